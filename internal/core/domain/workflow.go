package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/holdco_books/internal/apperrors"
)

// EntryStatus is the position of an entry in the approval workflow.
type EntryStatus string

const (
	StatusDraft                EntryStatus = "draft"
	StatusPendingFirstApproval EntryStatus = "pending_first_approval"
	StatusPendingFinalApproval EntryStatus = "pending_final_approval"
	StatusPosted               EntryStatus = "posted"
)

// Valid reports whether s is a known status.
func (s EntryStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingFirstApproval, StatusPendingFinalApproval, StatusPosted:
		return true
	}
	return false
}

// WorkflowStage is the numeric encoding exposed to API clients.
// It is derived from the status and never stored; 3 is unused.
func (s EntryStatus) WorkflowStage() int {
	switch s {
	case StatusPendingFirstApproval:
		return 1
	case StatusPendingFinalApproval:
		return 2
	case StatusPosted:
		return 4
	default:
		return 0
	}
}

// WorkflowEvent is an input to the approval state machine.
type WorkflowEvent string

const (
	EventSubmit  WorkflowEvent = "submit"
	EventApprove WorkflowEvent = "approve"
	EventReject  WorkflowEvent = "reject"
)

// transitions is the full state table. Anything absent is an illegal transition.
var transitions = map[EntryStatus]map[WorkflowEvent]EntryStatus{
	StatusDraft: {
		EventSubmit: StatusPendingFirstApproval,
	},
	StatusPendingFirstApproval: {
		EventApprove: StatusPendingFinalApproval,
		EventReject:  StatusDraft,
	},
	StatusPendingFinalApproval: {
		EventApprove: StatusPosted,
		EventReject:  StatusDraft,
	},
}

// allowedFrom lists the states from which ev may fire, in workflow order.
func allowedFrom(ev WorkflowEvent) []string {
	var out []string
	for _, s := range []EntryStatus{StatusDraft, StatusPendingFirstApproval, StatusPendingFinalApproval, StatusPosted} {
		if _, ok := transitions[s][ev]; ok {
			out = append(out, string(s))
		}
	}
	return out
}

// Next returns the state reached from s on ev.
func (s EntryStatus) Next(ev WorkflowEvent) (EntryStatus, error) {
	if s == StatusPosted {
		return s, fmt.Errorf("%w: entry is locked", apperrors.ErrInvalidState)
	}
	next, ok := transitions[s][ev]
	if !ok {
		return s, apperrors.NewInvalidStateError(string(ev), string(s), allowedFrom(ev)...)
	}
	return next, nil
}

// SubmitPolicy gates submission.
type SubmitPolicy struct {
	RequireSupportingDocument bool
}

// Approver is a resolved approver identity.
type Approver struct {
	UserID string
	Email  string
}

// Submit moves a draft to pending_first_approval.
func (e *JournalEntry) Submit(actorID string, policy SubmitPolicy, now time.Time) ([]AuditLog, error) {
	if e.IsLocked {
		return nil, fmt.Errorf("%w: entry is locked", apperrors.ErrInvalidState)
	}
	next, err := e.Status.Next(EventSubmit)
	if err != nil {
		return nil, err
	}
	if policy.RequireSupportingDocument && !e.HasSupportingDocument() {
		return nil, fmt.Errorf("%w: Supporting document required", apperrors.ErrPreconditionFailed)
	}
	if err := e.CheckBalanced(); err != nil {
		return nil, err
	}

	prev := e.Status
	e.Status = next
	e.touch(actorID, now)
	return []AuditLog{
		NewAuditLog(e.JournalEntryID, AuditSubmitted, actorID, now, "", statusValue(prev), statusValue(next)),
	}, nil
}

// Approve advances the entry one approval stage. The final stage posts and locks the entry.
func (e *JournalEntry) Approve(approver Approver, now time.Time) ([]AuditLog, error) {
	if e.IsLocked {
		return nil, fmt.Errorf("%w: entry is locked", apperrors.ErrInvalidState)
	}
	next, err := e.Status.Next(EventApprove)
	if err != nil {
		return nil, err
	}
	prev := e.Status

	switch prev {
	case StatusPendingFirstApproval:
		if approver.UserID == e.CreatedByID {
			return nil, fmt.Errorf("%w: self-approval not allowed", apperrors.ErrForbidden)
		}
		e.FirstApprovedByID = stringRef(approver.UserID)
		e.FirstApprovedByEmail = stringRef(approver.Email)
		e.FirstApprovedAt = timeRef(now)
		e.Status = next
		e.touch(approver.UserID, now)
		return []AuditLog{
			NewAuditLog(e.JournalEntryID, AuditApproved, approver.UserID, now, CommentFirstApproval, statusValue(prev), statusValue(next)),
		}, nil

	case StatusPendingFinalApproval:
		if approver.UserID == e.CreatedByID {
			return nil, fmt.Errorf("%w: self-approval not allowed", apperrors.ErrForbidden)
		}
		if e.FirstApprovedByID != nil && approver.UserID == *e.FirstApprovedByID {
			return nil, fmt.Errorf("%w: final approver must differ from creator and first approver", apperrors.ErrForbidden)
		}
		e.FinalApprovedByID = stringRef(approver.UserID)
		e.FinalApprovedByEmail = stringRef(approver.Email)
		e.FinalApprovedAt = timeRef(now)
		e.PostedAt = timeRef(now)
		e.Status = next
		e.IsLocked = true
		e.touch(approver.UserID, now)
		return []AuditLog{
			NewAuditLog(e.JournalEntryID, AuditApproved, approver.UserID, now, CommentFinalApproval, statusValue(prev), statusValue(StatusPendingFinalApproval)),
			NewAuditLog(e.JournalEntryID, AuditPosted, approver.UserID, now, CommentAutoPost, statusValue(StatusPendingFinalApproval), statusValue(next)),
		}, nil
	}
	// unreachable: the transition table only allows approve from the two pending states
	return nil, apperrors.NewInvalidStateError(string(EventApprove), string(prev), allowedFrom(EventApprove)...)
}

// Reject returns a pending entry to draft and clears every approval stamp,
// so a resubmitted entry needs two fresh approvals.
func (e *JournalEntry) Reject(actorID, reason string, now time.Time) ([]AuditLog, error) {
	if e.IsLocked {
		return nil, fmt.Errorf("%w: entry is locked", apperrors.ErrInvalidState)
	}
	next, err := e.Status.Next(EventReject)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	prev := e.Status
	e.Status = next
	e.RejectionReason = stringRef(reason)
	e.FirstApprovedByID = nil
	e.FirstApprovedByEmail = nil
	e.FirstApprovedAt = nil
	e.FinalApprovedByID = nil
	e.FinalApprovedByEmail = nil
	e.FinalApprovedAt = nil
	e.touch(actorID, now)
	return []AuditLog{
		NewAuditLog(e.JournalEntryID, AuditRejected, actorID, now, reason, statusValue(prev), statusValue(next)),
	}, nil
}

// HasSupportingDocument reports whether the submit document policy is satisfied.
func (e *JournalEntry) HasSupportingDocument() bool {
	return (e.DocumentID != nil && *e.DocumentID != "") || len(e.Attachments) > 0
}

func statusValue(s EntryStatus) *string {
	return stringRef(fmt.Sprintf(`{"status":%q,"workflow_stage":%d}`, s, s.WorkflowStage()))
}

func stringRef(s string) *string { return &s }

func timeRef(t time.Time) *time.Time { return &t }
