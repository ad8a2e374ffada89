package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	"github.com/SscSPs/holdco_books/internal/dto"
)

func (s *journalEntryService) AttachDocuments(ctx context.Context, entityID, entryID string, req dto.AttachDocumentsRequest, userID string) (*domain.JournalEntry, error) {
	ids := uniqueStrings(req.DocumentIDs)
	if len(ids) == 0 && (req.PrimaryDocumentID == nil || *req.PrimaryDocumentID == "") {
		return nil, fmt.Errorf("%w: at least one document id is required", apperrors.ErrValidation)
	}
	toCheck := ids
	if req.PrimaryDocumentID != nil && *req.PrimaryDocumentID != "" {
		toCheck = uniqueStrings(append(append([]string{}, ids...), *req.PrimaryDocumentID))
	}
	if err := s.ensureDocumentsExist(ctx, entityID, toCheck); err != nil {
		return nil, err
	}

	return s.mutate(ctx, entityID, entryID, "attach", func(store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry, now time.Time) ([]domain.AuditLog, error) {
		logs, err := entry.LinkDocuments(ids, req.PrimaryDocumentID, userID, now)
		if err != nil || len(logs) == 0 {
			return logs, err
		}
		return logs, saveAttachments(ctx, store, entry)
	})
}

func (s *journalEntryService) DetachDocument(ctx context.Context, entityID, entryID, documentID, userID string) (*domain.JournalEntry, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document id is required", apperrors.ErrValidation)
	}
	return s.mutate(ctx, entityID, entryID, "detach", func(store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry, now time.Time) ([]domain.AuditLog, error) {
		logs, err := entry.UnlinkDocument(documentID, userID, now)
		if err != nil {
			return nil, err
		}
		return logs, saveAttachments(ctx, store, entry)
	})
}

func (s *journalEntryService) ReorderAttachments(ctx context.Context, entityID, entryID string, req dto.ReorderAttachmentsRequest, userID string) (*domain.JournalEntry, error) {
	return s.mutate(ctx, entityID, entryID, "reorder attachments", func(store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry, now time.Time) ([]domain.AuditLog, error) {
		logs, err := entry.ReorderAttachments(req.DocumentIDs, req.PrimaryDocumentID, userID, now)
		if err != nil {
			return nil, err
		}
		return logs, saveAttachments(ctx, store, entry)
	})
}

// saveAttachments rewrites the links and the header, whose last-updated fields moved with them.
func saveAttachments(ctx context.Context, store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry) error {
	if err := store.ReplaceAttachments(ctx, entry.JournalEntryID, entry.Attachments); err != nil {
		return err
	}
	return store.UpdateEntryHeader(ctx, entry)
}
