package taxonomy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/holdco_books/internal/coa"
	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// the index is used as the journal service's label provider
var _ domain.LabelProvider = (*Index)(nil)

func TestDefault(t *testing.T) {
	idx, err := Default()
	require.NoError(t, err)

	label, ok := idx.StandardLabel("CashAndCashEquivalentsAtCarryingValue")
	assert.True(t, ok)
	assert.Equal(t, "Cash and Cash Equivalents, at Carrying Value", label)

	el, ok := idx.Lookup("AccountsPayableCurrent")
	require.True(t, ok)
	assert.Equal(t, "credit", el.Balance)
	assert.Equal(t, "instant", el.PeriodType)

	_, ok = idx.Lookup("NotAnElement")
	assert.False(t, ok)
}

func TestDefault_LoadsOnce(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*Index, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Default()
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestDefaultChartElementsAreKnown(t *testing.T) {
	idx, err := Default()
	require.NoError(t, err)
	for _, acct := range coa.DefaultChart() {
		if acct.XBRLElementName == nil {
			continue
		}
		_, ok := idx.Lookup(*acct.XBRLElementName)
		assert.True(t, ok, "account %s uses unknown element %s", acct.AccountNumber, *acct.XBRLElementName)
	}
}

func TestNewIndex_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing label", `[{"name":"Cash"}]`},
		{"duplicate", `[{"name":"Cash","standard_label":"Cash"},{"name":"Cash","standard_label":"Cash"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndex([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestNames_Sorted(t *testing.T) {
	idx, err := NewIndex([]byte(`[{"name":"B","standard_label":"b"},{"name":"A","standard_label":"a"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, idx.Names())
}
