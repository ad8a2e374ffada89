// Package coa reads and writes chart-of-accounts files used to seed an entity.
package coa

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

const (
	numFields        = 9
	colNumber        = 0
	colName          = 1
	colType          = 2
	colNormalBalance = 3
	colAllowPosting  = 4
	colActive        = 5
	colASCTopic      = 6
	colXBRLElement   = 7
	colXBRLLabel     = 8
)

// Header is the first row of a chart-of-accounts CSV.
var Header = []string{
	"account_number", "name", "account_type", "normal_balance",
	"allow_posting", "is_active", "primary_asc_topic", "xbrl_element_name", "xbrl_standard_label",
}

// ReadAccounts reads a chart-of-accounts CSV. The first row is the header.
func ReadAccounts(r io.Reader) ([]domain.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	accounts := make([]domain.Account, 0, len(records)-1)
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes accounts as a chart-of-accounts CSV with a header row.
func WriteAccounts(w io.Writer, accounts []domain.Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct domain.Account) []string {
	row := make([]string, numFields)
	row[colNumber] = acct.AccountNumber
	row[colName] = acct.Name
	row[colType] = string(acct.AccountType)
	row[colNormalBalance] = string(acct.NormalBalance)
	row[colAllowPosting] = strconv.FormatBool(acct.AllowPosting)
	row[colActive] = strconv.FormatBool(acct.IsActive)
	row[colASCTopic] = deref(acct.PrimaryASCTopic)
	row[colXBRLElement] = deref(acct.XBRLElementName)
	row[colXBRLLabel] = deref(acct.XBRLStandardLabel)
	return row
}

// UnmarshalAccount converts a CSV row to an Account. Empty boolean columns default to true
// and an empty normal balance follows the account type.
func UnmarshalAccount(record []string) (domain.Account, error) {
	if len(record) != numFields {
		return domain.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	number := strings.TrimSpace(record[colNumber])
	if number == "" {
		return domain.Account{}, fmt.Errorf("account_number is required")
	}
	accountType := domain.AccountType(strings.TrimSpace(record[colType]))
	if !accountType.Valid() {
		return domain.Account{}, fmt.Errorf("unknown account_type %q", record[colType])
	}

	normal := domain.NormalBalance(strings.TrimSpace(record[colNormalBalance]))
	switch normal {
	case "":
		normal = accountType.DefaultNormalBalance()
	case domain.NormalDebit, domain.NormalCredit:
	default:
		return domain.Account{}, fmt.Errorf("unknown normal_balance %q", record[colNormalBalance])
	}

	allowPosting, err := parseBool(record[colAllowPosting])
	if err != nil {
		return domain.Account{}, fmt.Errorf("parsing allow_posting: %w", err)
	}
	active, err := parseBool(record[colActive])
	if err != nil {
		return domain.Account{}, fmt.Errorf("parsing is_active: %w", err)
	}

	return domain.Account{
		AccountNumber:     number,
		Name:              strings.TrimSpace(record[colName]),
		AccountType:       accountType,
		NormalBalance:     normal,
		AllowPosting:      allowPosting,
		IsActive:          active,
		PrimaryASCTopic:   optional(record[colASCTopic]),
		XBRLElementName:   optional(record[colXBRLElement]),
		XBRLStandardLabel: optional(record[colXBRLLabel]),
	}, nil
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return true, nil
	}
	return strconv.ParseBool(s)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
