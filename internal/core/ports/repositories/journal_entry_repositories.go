package repositories

import (
	"context"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// EntryListFilter narrows ListEntries. Nil fields are not filtered on.
type EntryListFilter struct {
	EntityID   string
	Status     *domain.EntryStatus
	FiscalYear *int
}

// JournalEntryReader defines read operations for journal entries outside a unit of work.
type JournalEntryReader interface {
	// FindEntryByID loads an entry with its lines and attachments.
	FindEntryByID(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns entry headers (no lines) newest first, using token-based pagination.
	ListEntries(ctx context.Context, filter EntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListAuditLogs returns the audit trail of an entry ordered by performed_at then sequence.
	ListAuditLogs(ctx context.Context, entryID string) ([]domain.AuditLog, error)
}

// JournalEntryTxStore is the write surface available inside a unit of work.
// Every call runs in the same database transaction.
type JournalEntryTxStore interface {
	// LockEntry loads an entry with lines and attachments and holds a row lock until the unit of work ends.
	LockEntry(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error)

	// LockEntryHeaders locks the headers of several entries. Missing ids are simply absent from the result.
	LockEntryHeaders(ctx context.Context, entityID string, entryIDs []string) ([]domain.JournalEntry, error)

	// InsertEntry assigns the next entry number for the entry's fiscal year and persists header and lines.
	InsertEntry(ctx context.Context, entry *domain.JournalEntry) error

	// RenumberEntry assigns the next entry number of entry.FiscalYear and stores it.
	RenumberEntry(ctx context.Context, entry *domain.JournalEntry) error

	// UpdateEntryHeader persists every header column of the entry.
	UpdateEntryHeader(ctx context.Context, entry *domain.JournalEntry) error

	// ReplaceLines deletes all lines of the entry and inserts the given set.
	ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error

	// ReplaceAttachments rewrites the attachment links of the entry.
	ReplaceAttachments(ctx context.Context, entryID string, attachments []domain.JournalEntryAttachment) error

	// AppendAuditLogs inserts audit rows in order.
	AppendAuditLogs(ctx context.Context, logs []domain.AuditLog) error

	// DeleteEntries removes entries together with their lines, attachments and audit rows.
	DeleteEntries(ctx context.Context, entityID string, entryIDs []string) (int64, error)
}

// JournalUnitOfWork runs fn inside one database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type JournalUnitOfWork interface {
	WithinTx(ctx context.Context, fn func(store JournalEntryTxStore) error) error
}

// JournalEntryRepositoryFacade combines the journal entry read side and unit of work.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalUnitOfWork
}
