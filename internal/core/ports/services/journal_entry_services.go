package services

import (
	"context"

	"github.com/SscSPs/holdco_books/internal/core/domain"
	"github.com/SscSPs/holdco_books/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entries
type JournalEntryReaderSvc interface {
	// GetJournalEntry retrieves an entry with lines and attachments.
	GetJournalEntry(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entry headers.
	ListJournalEntries(ctx context.Context, entityID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// ListAuditLogs retrieves the ordered audit trail of an entry.
	ListAuditLogs(ctx context.Context, entityID, entryID string) ([]domain.AuditLog, error)
}

// JournalEntryWriterSvc defines the write operations on the aggregate
type JournalEntryWriterSvc interface {
	// CreateJournalEntry validates and persists a new draft. Every producer calls this.
	CreateJournalEntry(ctx context.Context, entityID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateJournalEntry applies a full update to a draft.
	UpdateJournalEntry(ctx context.Context, entityID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PatchJournalEntry updates header fields of an unlocked entry.
	PatchJournalEntry(ctx context.Context, entityID, entryID string, req dto.PatchJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// BulkDeleteJournalEntries removes unlocked entries. Admin only.
	BulkDeleteJournalEntries(ctx context.Context, entityID string, entryIDs []string, userID string) (int64, error)
}

// JournalWorkflowSvc drives the approval state machine
type JournalWorkflowSvc interface {
	// SubmitJournalEntry moves a draft to pending_first_approval.
	SubmitJournalEntry(ctx context.Context, entityID, entryID, userID string) (*domain.JournalEntry, error)

	// ApproveJournalEntry advances the entry one approval stage on behalf of approverIdentity.
	ApproveJournalEntry(ctx context.Context, entityID, entryID, approverIdentity, callerUserID string) (*domain.JournalEntry, error)

	// RejectJournalEntry returns a pending entry to draft.
	RejectJournalEntry(ctx context.Context, entityID, entryID, reason, userID string) (*domain.JournalEntry, error)
}

// JournalAttachmentSvc manages document links on an entry
type JournalAttachmentSvc interface {
	AttachDocuments(ctx context.Context, entityID, entryID string, req dto.AttachDocumentsRequest, userID string) (*domain.JournalEntry, error)
	DetachDocument(ctx context.Context, entityID, entryID, documentID, userID string) (*domain.JournalEntry, error)
	ReorderAttachments(ctx context.Context, entityID, entryID string, req dto.ReorderAttachmentsRequest, userID string) (*domain.JournalEntry, error)
}

// JournalEntrySvcFacade combines all journal entry service interfaces
// This is a facade for clients that need access to all operations
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
	JournalWorkflowSvc
	JournalAttachmentSvc
}
