package coa

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

func TestRoundTrip(t *testing.T) {
	element := "CashAndCashEquivalentsAtCarryingValue"
	accounts := []domain.Account{
		{AccountNumber: "10000", Name: "Current Assets", AccountType: domain.Asset, NormalBalance: domain.NormalDebit, IsActive: true},
		{AccountNumber: "10110", Name: "Operating Cash", AccountType: domain.Asset, NormalBalance: domain.NormalDebit, AllowPosting: true, IsActive: true, XBRLElementName: &element},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accounts))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "10000", got[0].AccountNumber)
	assert.False(t, got[0].AllowPosting)
	assert.Nil(t, got[0].XBRLElementName)
	assert.True(t, got[1].AllowPosting)
	require.NotNil(t, got[1].XBRLElementName)
	assert.Equal(t, element, *got[1].XBRLElementName)
}

func TestReadAccounts_Defaults(t *testing.T) {
	in := strings.Join([]string{
		strings.Join(Header, ","),
		"40100,Management Fees,Revenue,,,,ASC 606,,",
	}, "\n")

	got, err := ReadAccounts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, domain.NormalCredit, got[0].NormalBalance)
	assert.True(t, got[0].AllowPosting)
	assert.True(t, got[0].IsActive)
	require.NotNil(t, got[0].PrimaryASCTopic)
	assert.Equal(t, "ASC 606", *got[0].PrimaryASCTopic)
}

func TestReadAccounts_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"bad type", "10110,Cash,Cash,,,,,,", "unknown account_type"},
		{"bad balance", "10110,Cash,Asset,Left,,,,,", "unknown normal_balance"},
		{"bad bool", "10110,Cash,Asset,,maybe,,,,", "allow_posting"},
		{"missing number", ",Cash,Asset,,,,,,", "account_number is required"},
		{"short row", "10110,Cash,Asset", "wrong number of fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := strings.Join(Header, ",") + "\n" + tt.row + "\n"
			_, err := ReadAccounts(strings.NewReader(in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadAccounts_Empty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart()
	require.NotEmpty(t, chart)

	numbers := make(map[string]bool)
	for _, acct := range chart {
		assert.False(t, numbers[acct.AccountNumber], "duplicate account number %s", acct.AccountNumber)
		numbers[acct.AccountNumber] = true
		assert.True(t, acct.AccountType.Valid())
		if acct.AllowPosting {
			assert.NotNil(t, acct.XBRLElementName, "posting account %s has no element", acct.AccountNumber)
		}
	}
	assert.True(t, numbers["10110"])
	assert.True(t, numbers["40100"])
}
