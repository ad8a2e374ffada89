package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/holdco_books/internal/apperrors"
)

// Document is the minimal view of an externally stored supporting document.
// Only its existence matters to the ledger.
type Document struct {
	DocumentID string    `json:"documentID"`
	EntityID   string    `json:"entityID"`
	FileName   string    `json:"fileName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// JournalEntryAttachment links an entry to a supporting document.
type JournalEntryAttachment struct {
	JournalEntryID string    `json:"journalEntryID"`
	DocumentID     string    `json:"documentID"`
	DisplayOrder   int       `json:"displayOrder"`
	IsPrimary      bool      `json:"isPrimary"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

func (e *JournalEntry) attachmentIndex(documentID string) int {
	for i, a := range e.Attachments {
		if a.DocumentID == documentID {
			return i
		}
	}
	return -1
}

func (e *JournalEntry) maxDisplayOrder() int {
	highest := 0
	for _, a := range e.Attachments {
		if a.DisplayOrder > highest {
			highest = a.DisplayOrder
		}
	}
	return highest
}

func (e *JournalEntry) primaryDocumentID() string {
	for _, a := range e.Attachments {
		if a.IsPrimary {
			return a.DocumentID
		}
	}
	return ""
}

// setPrimary marks documentID as the only primary. It reports whether the primary changed.
func (e *JournalEntry) setPrimary(documentID string) (bool, error) {
	idx := e.attachmentIndex(documentID)
	if idx < 0 {
		return false, fmt.Errorf("%w: primary document %s is not attached to this entry", apperrors.ErrValidation, documentID)
	}
	if e.Attachments[idx].IsPrimary {
		return false, nil
	}
	for i := range e.Attachments {
		e.Attachments[i].IsPrimary = i == idx
	}
	return true, nil
}

// LinkDocuments attaches documents that are not yet linked. Already linked documents are skipped.
// When primaryID is set it becomes the only primary attachment.
func (e *JournalEntry) LinkDocuments(documentIDs []string, primaryID *string, actorID string, now time.Time) ([]AuditLog, error) {
	if err := e.EnsureUnlocked(); err != nil {
		return nil, err
	}
	if len(documentIDs) == 0 && primaryID == nil {
		return nil, fmt.Errorf("%w: at least one document id is required", apperrors.ErrValidation)
	}

	if primaryID != nil && *primaryID != "" && e.attachmentIndex(*primaryID) < 0 && !contains(documentIDs, *primaryID) {
		return nil, fmt.Errorf("%w: primary document %s is not attached to this entry", apperrors.ErrValidation, *primaryID)
	}

	var logs []AuditLog
	next := e.maxDisplayOrder()
	for _, docID := range documentIDs {
		if docID == "" {
			return nil, fmt.Errorf("%w: document id must not be empty", apperrors.ErrValidation)
		}
		if e.attachmentIndex(docID) >= 0 {
			continue
		}
		next++
		e.Attachments = append(e.Attachments, JournalEntryAttachment{
			JournalEntryID: e.JournalEntryID,
			DocumentID:     docID,
			DisplayOrder:   next,
			CreatedAt:      now,
			CreatedBy:      actorID,
		})
		logs = append(logs, NewAuditLog(e.JournalEntryID, AuditAttachmentLinked, actorID, now, "", nil, stringRef(docID)))
	}

	if primaryID != nil && *primaryID != "" {
		primaryLog, err := e.applyPrimary(*primaryID, actorID, now)
		if err != nil {
			return nil, err
		}
		if primaryLog != nil {
			logs = append(logs, *primaryLog)
		}
	}
	if len(logs) > 0 {
		e.touch(actorID, now)
	}
	return logs, nil
}

// UnlinkDocument removes the link to documentID. The document itself is untouched.
func (e *JournalEntry) UnlinkDocument(documentID string, actorID string, now time.Time) ([]AuditLog, error) {
	if err := e.EnsureUnlocked(); err != nil {
		return nil, err
	}
	idx := e.attachmentIndex(documentID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: document %s is not attached to entry %s", apperrors.ErrNotFound, documentID, e.displayID())
	}
	e.Attachments = append(e.Attachments[:idx], e.Attachments[idx+1:]...)
	e.touch(actorID, now)
	return []AuditLog{
		NewAuditLog(e.JournalEntryID, AuditAttachmentUnlinked, actorID, now, "", stringRef(documentID), nil),
	}, nil
}

// ReorderAttachments puts the listed documents first, in the given order, at positions 1..k.
// Unlisted attachments follow in their previous relative order.
func (e *JournalEntry) ReorderAttachments(orderedIDs []string, primaryID *string, actorID string, now time.Time) ([]AuditLog, error) {
	if err := e.EnsureUnlocked(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: document %s listed more than once", apperrors.ErrValidation, id)
		}
		if e.attachmentIndex(id) < 0 {
			return nil, fmt.Errorf("%w: document %s is not attached to this entry", apperrors.ErrValidation, id)
		}
		seen[id] = true
	}
	if primaryID != nil && *primaryID != "" && e.attachmentIndex(*primaryID) < 0 {
		return nil, fmt.Errorf("%w: primary document %s is not attached to this entry", apperrors.ErrValidation, *primaryID)
	}

	before := e.attachmentOrder()

	rest := make([]JournalEntryAttachment, 0, len(e.Attachments))
	for _, a := range e.Attachments {
		if !seen[a.DocumentID] {
			rest = append(rest, a)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].DisplayOrder < rest[j].DisplayOrder })

	reordered := make([]JournalEntryAttachment, 0, len(e.Attachments))
	for _, id := range orderedIDs {
		reordered = append(reordered, e.Attachments[e.attachmentIndex(id)])
	}
	reordered = append(reordered, rest...)
	for i := range reordered {
		reordered[i].DisplayOrder = i + 1
	}
	e.Attachments = reordered

	logs := []AuditLog{
		NewAuditLog(e.JournalEntryID, AuditAttachmentReordered, actorID, now, "", stringRef(before), stringRef(e.attachmentOrder())),
	}
	if primaryID != nil && *primaryID != "" {
		primaryLog, err := e.applyPrimary(*primaryID, actorID, now)
		if err != nil {
			return nil, err
		}
		if primaryLog != nil {
			logs = append(logs, *primaryLog)
		}
	}
	e.touch(actorID, now)
	return logs, nil
}

func (e *JournalEntry) applyPrimary(documentID, actorID string, now time.Time) (*AuditLog, error) {
	old := e.primaryDocumentID()
	changed, err := e.setPrimary(documentID)
	if err != nil || !changed {
		return nil, err
	}
	var oldValue *string
	if old != "" {
		oldValue = stringRef(old)
	}
	log := NewAuditLog(e.JournalEntryID, AuditAttachmentPrimarySet, actorID, now, "", oldValue, stringRef(documentID))
	return &log, nil
}

// attachmentOrder renders document ids by display order as a comma separated list.
func (e *JournalEntry) attachmentOrder() string {
	sorted := append([]JournalEntryAttachment(nil), e.Attachments...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DisplayOrder < sorted[j].DisplayOrder })
	ids := make([]string, len(sorted))
	for i, a := range sorted {
		ids[i] = a.DocumentID
	}
	return strings.Join(ids, ",")
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
