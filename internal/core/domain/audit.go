package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction names the kind of change an audit row records.
type AuditAction string

const (
	AuditCreated              AuditAction = "created"
	AuditEdited               AuditAction = "edited"
	AuditSubmitted            AuditAction = "submitted"
	AuditApproved             AuditAction = "approved"
	AuditPosted               AuditAction = "posted"
	AuditRejected             AuditAction = "rejected"
	AuditAttachmentLinked     AuditAction = "attachment_linked"
	AuditAttachmentUnlinked   AuditAction = "attachment_unlinked"
	AuditAttachmentPrimarySet AuditAction = "attachment_primary_set"
	AuditAttachmentReordered  AuditAction = "attachment_reordered"
	AuditRenumbered           AuditAction = "renumbered"
)

// Comments that distinguish the two approval rows and the automatic post.
const (
	CommentFirstApproval = "first_approval"
	CommentFinalApproval = "final_approval"
	CommentAutoPost      = "auto-post on final approval"
)

// AuditLog is one append-only row of an entry's history.
type AuditLog struct {
	AuditLogID     string      `json:"auditLogID"`
	JournalEntryID string      `json:"journalEntryID"`
	Action         AuditAction `json:"action"`
	PerformedByID  string      `json:"performedByID"`
	PerformedAt    time.Time   `json:"performedAt"`
	Comment        string      `json:"comment"`
	OldValue       *string     `json:"oldValue,omitempty"`
	NewValue       *string     `json:"newValue,omitempty"`
	// Sequence is assigned by the store and breaks ties between rows with the same PerformedAt.
	Sequence int64 `json:"sequence"`
}

// NewAuditLog builds an audit row with a fresh id.
func NewAuditLog(entryID string, action AuditAction, performedBy string, at time.Time, comment string, oldValue, newValue *string) AuditLog {
	return AuditLog{
		AuditLogID:     uuid.NewString(),
		JournalEntryID: entryID,
		Action:         action,
		PerformedByID:  performedBy,
		PerformedAt:    at,
		Comment:        comment,
		OldValue:       oldValue,
		NewValue:       newValue,
	}
}
