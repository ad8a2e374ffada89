package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	JournalEntryID       string     `db:"journal_entry_id"`
	EntityID             string     `db:"entity_id"`
	EntryNumber          string     `db:"entry_number"`
	EntryDate            time.Time  `db:"entry_date"`
	FiscalYear           int        `db:"fiscal_year"`
	FiscalPeriod         int        `db:"fiscal_period"`
	EntryType            string     `db:"entry_type"`
	Memo                 string     `db:"memo"`
	Reference            string     `db:"reference"`
	SourceType           string     `db:"source_type"`
	SourceID             *string    `db:"source_id"`
	DocumentID           *string    `db:"document_id"`
	Status               string     `db:"status"`
	IsLocked             bool       `db:"is_locked"`
	CreatedByID          string     `db:"created_by_id"`
	FirstApprovedByID    *string    `db:"first_approved_by_id"`
	FirstApprovedByEmail *string    `db:"first_approved_by_email"`
	FirstApprovedAt      *time.Time `db:"first_approved_at"`
	FinalApprovedByID    *string    `db:"final_approved_by_id"`
	FinalApprovedByEmail *string    `db:"final_approved_by_email"`
	FinalApprovedAt      *time.Time `db:"final_approved_at"`
	PostedAt             *time.Time `db:"posted_at"`
	RejectionReason      *string    `db:"rejection_reason"`
	AuditFields
}

// JournalEntryLine is a row of the journal_entry_lines table.
type JournalEntryLine struct {
	LineID            string          `db:"line_id"`
	JournalEntryID    string          `db:"journal_entry_id"`
	LineNumber        int             `db:"line_number"`
	AccountID         string          `db:"account_id"`
	DebitAmount       decimal.Decimal `db:"debit_amount"`
	CreditAmount      decimal.Decimal `db:"credit_amount"`
	Description       string          `db:"description"`
	PrimaryASCTopic   *string         `db:"primary_asc_topic"`
	XBRLElementName   *string         `db:"xbrl_element_name"`
	XBRLStandardLabel *string         `db:"xbrl_standard_label"`
}

// JournalEntryAttachment is a row of the journal_entry_attachments table.
type JournalEntryAttachment struct {
	JournalEntryID string    `db:"journal_entry_id"`
	DocumentID     string    `db:"document_id"`
	DisplayOrder   int       `db:"display_order"`
	IsPrimary      bool      `db:"is_primary"`
	CreatedAt      time.Time `db:"created_at"`
	CreatedBy      string    `db:"created_by"`
}

// AuditLog is a row of the journal_entry_audit_logs table.
type AuditLog struct {
	AuditLogID     string    `db:"audit_log_id"`
	AuditSeq       int64     `db:"audit_seq"`
	JournalEntryID string    `db:"journal_entry_id"`
	Action         string    `db:"action"`
	PerformedByID  string    `db:"performed_by_id"`
	PerformedAt    time.Time `db:"performed_at"`
	Comment        string    `db:"comment"`
	OldValue       *string   `db:"old_value"`
	NewValue       *string   `db:"new_value"`
}
