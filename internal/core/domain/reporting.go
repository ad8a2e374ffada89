package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostedLine is one line of a posted entry as seen by reporting consumers.
// Statement aggregation happens outside the ledger.
type PostedLine struct {
	JournalEntryID    string          `json:"journalEntryID"`
	EntryNumber       string          `json:"entryNumber"`
	EntryDate         time.Time       `json:"entryDate"`
	FiscalYear        int             `json:"fiscalYear"`
	FiscalPeriod      int             `json:"fiscalPeriod"`
	LineNumber        int             `json:"lineNumber"`
	AccountID         string          `json:"accountID"`
	AccountNumber     string          `json:"accountNumber"`
	AccountName       string          `json:"accountName"`
	AccountType       AccountType     `json:"accountType"`
	DebitAmount       decimal.Decimal `json:"debitAmount"`
	CreditAmount      decimal.Decimal `json:"creditAmount"`
	Description       string          `json:"description"`
	XBRLElementName   *string         `json:"xbrlElementName,omitempty"`
	XBRLStandardLabel *string         `json:"xbrlStandardLabel,omitempty"`
}

// DateRange is an inclusive range of entry dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}
