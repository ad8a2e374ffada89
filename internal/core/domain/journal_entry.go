package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/holdco_books/internal/apperrors"
)

// EntryType classifies why a journal entry exists.
type EntryType string

const (
	EntryTypeStandard  EntryType = "Standard"
	EntryTypeAdjusting EntryType = "Adjusting"
	EntryTypeClosing   EntryType = "Closing"
	EntryTypeReversing EntryType = "Reversing"
)

// SourceType names the producer that created an entry.
type SourceType string

const (
	SourceManualEntry  SourceType = "ManualEntry"
	SourceMercury      SourceType = "Mercury"
	SourceBankMatch    SourceType = "BankMatch"
	SourceDepreciation SourceType = "Depreciation"
	SourcePayroll      SourceType = "Payroll"
	SourceTaxProvision SourceType = "TaxProvision"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeStandard, EntryTypeAdjusting, EntryTypeClosing, EntryTypeReversing:
		return true
	}
	return false
}

// Valid reports whether t is a known producer.
func (t SourceType) Valid() bool {
	switch t {
	case SourceManualEntry, SourceMercury, SourceBankMatch, SourceDepreciation, SourcePayroll, SourceTaxProvision:
		return true
	}
	return false
}

// MinLines is the smallest number of lines a journal entry may carry.
const MinLines = 2

// amountScale is the number of decimal places an amount may carry (whole cents).
const amountScale = 2

// JournalEntryLine is one debit or credit against a single account.
type JournalEntryLine struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	LineNumber     int             `json:"lineNumber"` // 1-based, dense
	AccountID      string          `json:"accountID"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Description    string          `json:"description"`
	// Classification copied from the account when the line was created.
	PrimaryASCTopic   *string `json:"primaryAscTopic,omitempty"`
	XBRLElementName   *string `json:"xbrlElementName,omitempty"`
	XBRLStandardLabel *string `json:"xbrlStandardLabel,omitempty"`
}

// LineInput is a proposed line before it has been checked against the chart of accounts.
type LineInput struct {
	AccountID    string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
	Description  string
}

// JournalEntry is the aggregate root: header, ordered lines and document links.
// Audit rows belong to the entry but are stored and loaded separately.
type JournalEntry struct {
	JournalEntryID string      `json:"journalEntryID"`
	EntityID       string      `json:"entityID"`
	EntryNumber    string      `json:"entryNumber"` // JE-<fiscal_year>-<6 digit seq>
	EntryDate      time.Time   `json:"entryDate"`
	FiscalYear     int         `json:"fiscalYear"`
	FiscalPeriod   int         `json:"fiscalPeriod"`
	EntryType      EntryType   `json:"entryType"`
	Memo           string      `json:"memo"`
	Reference      string      `json:"reference"`
	SourceType     SourceType  `json:"sourceType"`
	SourceID       *string     `json:"sourceID,omitempty"`
	DocumentID     *string     `json:"documentID,omitempty"`
	Status         EntryStatus `json:"status"`
	IsLocked       bool        `json:"isLocked"`

	CreatedByID          string     `json:"createdByID"`
	FirstApprovedByID    *string    `json:"firstApprovedByID,omitempty"`
	FirstApprovedByEmail *string    `json:"firstApprovedByEmail,omitempty"`
	FirstApprovedAt      *time.Time `json:"firstApprovedAt,omitempty"`
	FinalApprovedByID    *string    `json:"finalApprovedByID,omitempty"`
	FinalApprovedByEmail *string    `json:"finalApprovedByEmail,omitempty"`
	FinalApprovedAt      *time.Time `json:"finalApprovedAt,omitempty"`
	PostedAt             *time.Time `json:"postedAt,omitempty"`
	RejectionReason      *string    `json:"rejectionReason,omitempty"`

	Lines       []JournalEntryLine       `json:"lines"`
	Attachments []JournalEntryAttachment `json:"attachments"`
	AuditFields
}

// NewEntryParams holds the producer-supplied header of a new entry.
type NewEntryParams struct {
	EntityID    string
	EntryDate   time.Time
	EntryType   EntryType
	Memo        string
	Reference   string
	SourceType  SourceType
	SourceID    *string
	CreatedByID string
	Lines       []LineInput
}

// FiscalPeriodOf returns the fiscal year and period for a date (calendar year and month).
func FiscalPeriodOf(date time.Time) (int, int) {
	return date.Year(), int(date.Month())
}

// FormatEntryNumber renders the human-readable entry number.
func FormatEntryNumber(fiscalYear int, seq int) string {
	return fmt.Sprintf("JE-%d-%06d", fiscalYear, seq)
}

// truncateToDate drops the clock part so entry dates compare as calendar days.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateLines checks the structural rules of a line set: line count, amounts and balance.
// Account eligibility is checked separately because it needs the chart of accounts.
func ValidateLines(lines []LineInput) error {
	if len(lines) < MinLines {
		return fmt.Errorf("%w: entry must have at least %d lines, got %d", apperrors.ErrValidation, MinLines, len(lines))
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for i, line := range lines {
		lineNo := i + 1
		if line.AccountID == "" {
			return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, lineNo)
		}
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, lineNo)
		}
		hasDebit := line.DebitAmount.IsPositive()
		hasCredit := line.CreditAmount.IsPositive()
		if hasDebit && hasCredit {
			return fmt.Errorf("%w: line %d sets both debit and credit", apperrors.ErrValidation, lineNo)
		}
		if !hasDebit && !hasCredit {
			return fmt.Errorf("%w: line %d must set exactly one of debit or credit", apperrors.ErrValidation, lineNo)
		}
		if !line.DebitAmount.Equal(line.DebitAmount.Round(amountScale)) || !line.CreditAmount.Equal(line.CreditAmount.Round(amountScale)) {
			return fmt.Errorf("%w: line %d has more than %d decimal places", apperrors.ErrValidation, lineNo, amountScale)
		}
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}

	if !debits.Equal(credits) {
		return unbalancedError(debits, credits)
	}
	return nil
}

func unbalancedError(debits, credits decimal.Decimal) error {
	return fmt.Errorf("%w: Entry must be balanced. Debits=%s, Credits=%s",
		apperrors.ErrValidation, debits.StringFixed(amountScale), credits.StringFixed(amountScale))
}

// BuildLines validates inputs and account eligibility and produces numbered lines for entryID.
// Classification metadata is copied from the account; a missing label is filled from labels when possible.
func BuildLines(entryID string, inputs []LineInput, accounts map[string]Account, labels LabelProvider) ([]JournalEntryLine, error) {
	if err := ValidateLines(inputs); err != nil {
		return nil, err
	}

	lines := make([]JournalEntryLine, len(inputs))
	for i, in := range inputs {
		acc, ok := accounts[in.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, in.AccountID)
		}
		if err := acc.CheckPostable(); err != nil {
			return nil, err
		}

		line := JournalEntryLine{
			LineID:          uuid.NewString(),
			JournalEntryID:  entryID,
			LineNumber:      i + 1,
			AccountID:       in.AccountID,
			DebitAmount:     in.DebitAmount,
			CreditAmount:    in.CreditAmount,
			Description:     in.Description,
			PrimaryASCTopic: copyString(acc.PrimaryASCTopic),
			XBRLElementName: copyString(acc.XBRLElementName),
		}
		line.XBRLStandardLabel = copyString(acc.XBRLStandardLabel)
		if line.XBRLStandardLabel == nil && line.XBRLElementName != nil && labels != nil {
			if label, found := labels.StandardLabel(*line.XBRLElementName); found {
				line.XBRLStandardLabel = &label
			}
		}
		lines[i] = line
	}
	return lines, nil
}

// NewJournalEntry validates params against the chart of accounts and returns a draft entry.
// The entry number is left empty; the store assigns it atomically on insert.
func NewJournalEntry(p NewEntryParams, accounts map[string]Account, labels LabelProvider, now time.Time) (*JournalEntry, error) {
	if p.EntityID == "" {
		return nil, fmt.Errorf("%w: entity is required", apperrors.ErrValidation)
	}
	if p.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	if p.CreatedByID == "" {
		return nil, fmt.Errorf("%w: creator is required", apperrors.ErrValidation)
	}

	entryType := p.EntryType
	if entryType == "" {
		entryType = EntryTypeStandard
	}
	if !entryType.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, entryType)
	}
	sourceType := p.SourceType
	if sourceType == "" {
		sourceType = SourceManualEntry
	}
	if !sourceType.Valid() {
		return nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, sourceType)
	}

	entryID := uuid.NewString()
	lines, err := BuildLines(entryID, p.Lines, accounts, labels)
	if err != nil {
		return nil, err
	}

	entryDate := truncateToDate(p.EntryDate)
	fiscalYear, fiscalPeriod := FiscalPeriodOf(entryDate)

	return &JournalEntry{
		JournalEntryID: entryID,
		EntityID:       p.EntityID,
		EntryDate:      entryDate,
		FiscalYear:     fiscalYear,
		FiscalPeriod:   fiscalPeriod,
		EntryType:      entryType,
		Memo:           p.Memo,
		Reference:      p.Reference,
		SourceType:     sourceType,
		SourceID:       p.SourceID,
		Status:         StatusDraft,
		IsLocked:       false,
		CreatedByID:    p.CreatedByID,
		Lines:          lines,
		Attachments:    []JournalEntryAttachment{},
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.CreatedByID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.CreatedByID,
		},
	}, nil
}

// TotalDebits sums the debit side at full precision.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// TotalCredits sums the credit side at full precision.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}

// CheckBalanced re-validates line count and balance on the entry's current lines.
func (e *JournalEntry) CheckBalanced() error {
	if len(e.Lines) < MinLines {
		return fmt.Errorf("%w: entry must have at least %d lines, got %d", apperrors.ErrValidation, MinLines, len(e.Lines))
	}
	debits, credits := e.TotalDebits(), e.TotalCredits()
	if !debits.Equal(credits) {
		return unbalancedError(debits, credits)
	}
	return nil
}

// EnsureUnlocked fails once the entry has been posted.
func (e *JournalEntry) EnsureUnlocked() error {
	if e.IsLocked || e.Status == StatusPosted {
		return fmt.Errorf("%w: entry %s is locked", apperrors.ErrInvalidState, e.displayID())
	}
	return nil
}

// EnsureEditable fails unless the entry is an unlocked draft.
func (e *JournalEntry) EnsureEditable() error {
	if err := e.EnsureUnlocked(); err != nil {
		return err
	}
	if e.Status != StatusDraft {
		return apperrors.NewInvalidStateError("edit", string(e.Status), string(StatusDraft))
	}
	return nil
}

func (e *JournalEntry) displayID() string {
	if e.EntryNumber != "" {
		return e.EntryNumber
	}
	return e.JournalEntryID
}

// EntryUpdate is a full draft update. Nil fields are left unchanged; a non-nil Lines replaces every line.
type EntryUpdate struct {
	EntryDate *time.Time
	EntryType *EntryType
	Memo      *string
	Reference *string
	Lines     []LineInput
}

// ApplyUpdate mutates a draft entry. It reports whether the fiscal year changed,
// in which case the caller must assign a new entry number.
func (e *JournalEntry) ApplyUpdate(u EntryUpdate, accounts map[string]Account, labels LabelProvider, actorID string, now time.Time) (bool, error) {
	if err := e.EnsureEditable(); err != nil {
		return false, err
	}
	if u.EntryType != nil && !u.EntryType.Valid() {
		return false, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, *u.EntryType)
	}

	var newLines []JournalEntryLine
	if u.Lines != nil {
		lines, err := BuildLines(e.JournalEntryID, u.Lines, accounts, labels)
		if err != nil {
			return false, err
		}
		newLines = lines
	}

	yearChanged := false
	if u.EntryDate != nil {
		if u.EntryDate.IsZero() {
			return false, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
		}
		date := truncateToDate(*u.EntryDate)
		year, period := FiscalPeriodOf(date)
		yearChanged = year != e.FiscalYear
		e.EntryDate = date
		e.FiscalYear = year
		e.FiscalPeriod = period
	}
	if u.EntryType != nil {
		e.EntryType = *u.EntryType
	}
	if u.Memo != nil {
		e.Memo = *u.Memo
	}
	if u.Reference != nil {
		e.Reference = *u.Reference
	}
	if newLines != nil {
		e.Lines = newLines
	}
	e.touch(actorID, now)
	return yearChanged, nil
}

// EntryPatch is the header-only update allowed on any unlocked entry.
type EntryPatch struct {
	DocumentID *string
	Memo       *string
	Reference  *string
}

// ApplyPatch mutates header fields of an unlocked entry without touching lines.
func (e *JournalEntry) ApplyPatch(p EntryPatch, actorID string, now time.Time) error {
	if err := e.EnsureUnlocked(); err != nil {
		return err
	}
	if p.DocumentID != nil {
		if *p.DocumentID == "" {
			e.DocumentID = nil
		} else {
			id := *p.DocumentID
			e.DocumentID = &id
		}
	}
	if p.Memo != nil {
		e.Memo = *p.Memo
	}
	if p.Reference != nil {
		e.Reference = *p.Reference
	}
	e.touch(actorID, now)
	return nil
}

func (e *JournalEntry) touch(actorID string, now time.Time) {
	e.LastUpdatedAt = now
	e.LastUpdatedBy = actorID
}

// snapshotLine and entrySnapshot are the JSON shapes recorded in audit old/new values.
type snapshotLine struct {
	LineNumber   int    `json:"line_number"`
	AccountID    string `json:"account_id"`
	DebitAmount  string `json:"debit_amount"`
	CreditAmount string `json:"credit_amount"`
	Description  string `json:"description,omitempty"`
}

type entrySnapshot struct {
	EntryNumber string         `json:"entry_number"`
	EntryDate   string         `json:"entry_date"`
	EntryType   EntryType      `json:"entry_type"`
	Memo        string         `json:"memo"`
	Reference   string         `json:"reference"`
	DocumentID  *string        `json:"document_id,omitempty"`
	Status      EntryStatus    `json:"status"`
	Lines       []snapshotLine `json:"lines"`
}

// Snapshot renders the editable state of the entry as JSON for the audit trail.
func (e *JournalEntry) Snapshot() string {
	s := entrySnapshot{
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate.Format("2006-01-02"),
		EntryType:   e.EntryType,
		Memo:        e.Memo,
		Reference:   e.Reference,
		DocumentID:  e.DocumentID,
		Status:      e.Status,
		Lines:       make([]snapshotLine, len(e.Lines)),
	}
	for i, l := range e.Lines {
		s.Lines[i] = snapshotLine{
			LineNumber:   l.LineNumber,
			AccountID:    l.AccountID,
			DebitAmount:  l.DebitAmount.StringFixed(amountScale),
			CreditAmount: l.CreditAmount.StringFixed(amountScale),
			Description:  l.Description,
		}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Clone returns a deep copy so callers can hold a before-image while mutating.
func (e *JournalEntry) Clone() *JournalEntry {
	c := *e
	c.Lines = append([]JournalEntryLine(nil), e.Lines...)
	c.Attachments = append([]JournalEntryAttachment(nil), e.Attachments...)
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
