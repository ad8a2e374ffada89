package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
)

func (s *journalEntryService) SubmitJournalEntry(ctx context.Context, entityID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.mutate(ctx, entityID, entryID, "submit", func(store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry, now time.Time) ([]domain.AuditLog, error) {
		logs, err := entry.Submit(userID, s.submitPolicy, now)
		if err != nil {
			return nil, err
		}
		return logs, store.UpdateEntryHeader(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry submitted", slog.String("entry_number", entry.EntryNumber), slog.String("user_id", userID))
	return entry, nil
}

// ApproveJournalEntry resolves approverIdentity to a user and advances the entry one stage.
// The identity must belong to the authenticated caller; nobody approves on another user's behalf.
func (s *journalEntryService) ApproveJournalEntry(ctx context.Context, entityID, entryID, approverIdentity, callerUserID string) (*domain.JournalEntry, error) {
	if callerUserID == "" {
		return nil, fmt.Errorf("%w: authenticated user is required", apperrors.ErrUnauthorized)
	}
	email := strings.TrimSpace(approverIdentity)
	if email == "" {
		return nil, fmt.Errorf("%w: approver_identity is required", apperrors.ErrValidation)
	}
	approver, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: approver %s", apperrors.ErrNotFound, email)
		}
		return nil, err
	}
	if approver.DeletedAt != nil {
		return nil, fmt.Errorf("%w: approver %s", apperrors.ErrNotFound, email)
	}
	if callerUserID != approver.UserID {
		return nil, fmt.Errorf("%w: approver identity does not match the authenticated user", apperrors.ErrForbidden)
	}

	entry, err := s.mutate(ctx, entityID, entryID, "approve", func(store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry, now time.Time) ([]domain.AuditLog, error) {
		logs, err := entry.Approve(domain.Approver{UserID: approver.UserID, Email: approver.Email}, now)
		if err != nil {
			return nil, err
		}
		return logs, store.UpdateEntryHeader(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry approved",
		slog.String("entry_number", entry.EntryNumber),
		slog.String("approver_id", approver.UserID),
		slog.String("status", string(entry.Status)))
	return entry, nil
}

func (s *journalEntryService) RejectJournalEntry(ctx context.Context, entityID, entryID, reason, userID string) (*domain.JournalEntry, error) {
	reason = strings.TrimSpace(reason)
	entry, err := s.mutate(ctx, entityID, entryID, "reject", func(store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry, now time.Time) ([]domain.AuditLog, error) {
		logs, err := entry.Reject(userID, reason, now)
		if err != nil {
			return nil, err
		}
		return logs, store.UpdateEntryHeader(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry rejected", slog.String("entry_number", entry.EntryNumber), slog.String("user_id", userID))
	return entry, nil
}
