package dto

import (
	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// PostedLinesParams selects the inclusive entry-date range.
type PostedLinesParams struct {
	Start string `form:"start" binding:"required,datetime=2006-01-02"`
	End   string `form:"end" binding:"required,datetime=2006-01-02"`
}

// PostedLineResponse is one posted ledger line.
type PostedLineResponse struct {
	JournalEntryID    string  `json:"journal_entry_id"`
	EntryNumber       string  `json:"entry_number"`
	EntryDate         string  `json:"entry_date"`
	FiscalYear        int     `json:"fiscal_year"`
	FiscalPeriod      int     `json:"fiscal_period"`
	LineNumber        int     `json:"line_number"`
	AccountID         string  `json:"account_id"`
	AccountNumber     string  `json:"account_number"`
	AccountName       string  `json:"account_name"`
	AccountType       string  `json:"account_type"`
	DebitAmount       string  `json:"debit_amount"`
	CreditAmount      string  `json:"credit_amount"`
	Description       string  `json:"description"`
	XBRLElementName   *string `json:"xbrl_element_name,omitempty"`
	XBRLStandardLabel *string `json:"xbrl_standard_label,omitempty"`
}

// PostedLinesResponse wraps posted lines for a period.
type PostedLinesResponse struct {
	Start string               `json:"start"`
	End   string               `json:"end"`
	Lines []PostedLineResponse `json:"lines"`
}

// ToPostedLinesResponse converts domain posted lines to the wire form.
func ToPostedLinesResponse(lines []domain.PostedLine, period domain.DateRange) PostedLinesResponse {
	resp := PostedLinesResponse{
		Start: period.Start.Format(DateLayout),
		End:   period.End.Format(DateLayout),
		Lines: make([]PostedLineResponse, len(lines)),
	}
	for i, l := range lines {
		resp.Lines[i] = PostedLineResponse{
			JournalEntryID:    l.JournalEntryID,
			EntryNumber:       l.EntryNumber,
			EntryDate:         l.EntryDate.Format(DateLayout),
			FiscalYear:        l.FiscalYear,
			FiscalPeriod:      l.FiscalPeriod,
			LineNumber:        l.LineNumber,
			AccountID:         l.AccountID,
			AccountNumber:     l.AccountNumber,
			AccountName:       l.AccountName,
			AccountType:       string(l.AccountType),
			DebitAmount:       l.DebitAmount.StringFixed(2),
			CreditAmount:      l.CreditAmount.StringFixed(2),
			Description:       l.Description,
			XBRLElementName:   l.XBRLElementName,
			XBRLStandardLabel: l.XBRLStandardLabel,
		}
	}
	return resp
}

// TaxonomyElementResponse is a taxonomy element lookup result.
type TaxonomyElementResponse struct {
	Name          string `json:"name"`
	StandardLabel string `json:"standard_label"`
	Balance       string `json:"balance,omitempty"`
	PeriodType    string `json:"period_type,omitempty"`
}
