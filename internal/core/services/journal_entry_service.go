package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/dto"
)

// journalEntryService implements the aggregate, workflow and attachment operations.
// Every mutation loads the entry under a row lock and appends its audit rows in the same unit of work.
type journalEntryService struct {
	BaseService
	entryRepo    portsrepo.JournalEntryRepositoryFacade
	accountSvc   portssvc.AccountReaderSvc
	userRepo     portsrepo.UserReader
	documentRepo portsrepo.DocumentReader
	labels       domain.LabelProvider
	submitPolicy domain.SubmitPolicy
	now          func() time.Time
}

// JournalEntryServiceOption is a functional option for configuring the journal entry service
type JournalEntryServiceOption func(*journalEntryService)

// WithLabelProvider sets the taxonomy label provider used to fill line labels.
func WithLabelProvider(labels domain.LabelProvider) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.labels = labels
	}
}

// WithSubmitPolicy sets the submission gate.
func WithSubmitPolicy(policy domain.SubmitPolicy) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.submitPolicy = policy
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.now = now
	}
}

// WithEntityReader enables entity existence checks.
func WithEntityReader(reader portsrepo.EntityReader) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.EntityReader = reader
	}
}

// NewJournalEntryService creates a new journal entry service with the provided options
func NewJournalEntryService(
	entryRepo portsrepo.JournalEntryRepositoryFacade,
	accountSvc portssvc.AccountReaderSvc,
	userRepo portsrepo.UserReader,
	documentRepo portsrepo.DocumentReader,
	options ...JournalEntryServiceOption,
) portssvc.JournalEntrySvcFacade {
	svc := &journalEntryService{
		entryRepo:    entryRepo,
		accountSvc:   accountSvc,
		userRepo:     userRepo,
		documentRepo: documentRepo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalEntryService implements the JournalEntrySvcFacade interface
var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

func (s *journalEntryService) clock() time.Time {
	return s.now().UTC()
}

// loadAccounts fetches every account referenced by the lines.
func (s *journalEntryService) loadAccounts(ctx context.Context, entityID string, lines []domain.LineInput) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l.AccountID == "" || seen[l.AccountID] {
			continue
		}
		seen[l.AccountID] = true
		ids = append(ids, l.AccountID)
	}
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}
	return s.accountSvc.GetAccountsByIDs(ctx, entityID, ids)
}

func (s *journalEntryService) CreateJournalEntry(ctx context.Context, entityID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if creatorUserID == "" {
		return nil, fmt.Errorf("%w: authenticated user is required", apperrors.ErrUnauthorized)
	}
	if err := s.EnsureEntity(ctx, entityID); err != nil {
		return nil, err
	}

	entryDate, err := time.Parse(dto.DateLayout, req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: entry_date must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	lines := dto.ToLineInputs(req.Lines)

	// structural checks first so an unbalanced request never hits the database
	if err := domain.ValidateLines(lines); err != nil {
		return nil, err
	}
	accounts, err := s.loadAccounts(ctx, entityID, lines)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	entry, err := domain.NewJournalEntry(domain.NewEntryParams{
		EntityID:    entityID,
		EntryDate:   entryDate,
		EntryType:   domain.EntryType(req.EntryType),
		Memo:        req.Memo,
		Reference:   req.Reference,
		SourceType:  domain.SourceType(req.SourceType),
		SourceID:    req.SourceID,
		CreatedByID: creatorUserID,
		Lines:       lines,
	}, accounts, s.labels, now)
	if err != nil {
		return nil, err
	}

	err = s.entryRepo.WithinTx(ctx, func(store portsrepo.JournalEntryTxStore) error {
		if err := store.InsertEntry(ctx, entry); err != nil {
			return err
		}
		created := domain.NewAuditLog(entry.JournalEntryID, domain.AuditCreated, creatorUserID, now, string(entry.SourceType), nil, stringPtr(entry.Snapshot()))
		return store.AppendAuditLogs(ctx, []domain.AuditLog{created})
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to create journal entry", slog.String("entity_id", entityID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("source_type", string(entry.SourceType)))
	return entry, nil
}

func (s *journalEntryService) UpdateJournalEntry(ctx context.Context, entityID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	update := domain.EntryUpdate{
		Memo:      req.Memo,
		Reference: req.Reference,
		Lines:     dto.ToLineInputs(req.Lines),
	}
	if req.EntryDate != nil {
		date, err := time.Parse(dto.DateLayout, *req.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: entry_date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		update.EntryDate = &date
	}
	if req.EntryType != nil {
		et := domain.EntryType(*req.EntryType)
		update.EntryType = &et
	}

	return s.mutate(ctx, entityID, entryID, "update", func(store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry, now time.Time) ([]domain.AuditLog, error) {
		if err := entry.EnsureEditable(); err != nil {
			return nil, err
		}
		var accounts map[string]domain.Account
		if update.Lines != nil {
			if err := domain.ValidateLines(update.Lines); err != nil {
				return nil, err
			}
			var err error
			if accounts, err = s.loadAccounts(ctx, entityID, update.Lines); err != nil {
				return nil, err
			}
		}

		before := entry.Snapshot()
		oldNumber := entry.EntryNumber

		yearChanged, err := entry.ApplyUpdate(update, accounts, s.labels, userID, now)
		if err != nil {
			return nil, err
		}

		var logs []domain.AuditLog
		if yearChanged {
			if err := store.RenumberEntry(ctx, entry); err != nil {
				return nil, err
			}
			logs = append(logs, domain.NewAuditLog(entry.JournalEntryID, domain.AuditRenumbered, userID, now,
				fmt.Sprintf("fiscal year changed to %d", entry.FiscalYear), stringPtr(oldNumber), stringPtr(entry.EntryNumber)))
		}
		if err := store.UpdateEntryHeader(ctx, entry); err != nil {
			return nil, err
		}
		if update.Lines != nil {
			if err := store.ReplaceLines(ctx, entry.JournalEntryID, entry.Lines); err != nil {
				return nil, err
			}
		}
		edited := domain.NewAuditLog(entry.JournalEntryID, domain.AuditEdited, userID, now, "", stringPtr(before), stringPtr(entry.Snapshot()))
		return append([]domain.AuditLog{edited}, logs...), nil
	})
}

func (s *journalEntryService) PatchJournalEntry(ctx context.Context, entityID, entryID string, req dto.PatchJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if req.DocumentID == nil && req.Memo == nil && req.Reference == nil {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidation)
	}
	if req.DocumentID != nil && *req.DocumentID != "" {
		if err := s.ensureDocumentsExist(ctx, entityID, []string{*req.DocumentID}); err != nil {
			return nil, err
		}
	}

	return s.mutate(ctx, entityID, entryID, "patch", func(store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry, now time.Time) ([]domain.AuditLog, error) {
		before := entry.Snapshot()
		if err := entry.ApplyPatch(domain.EntryPatch{DocumentID: req.DocumentID, Memo: req.Memo, Reference: req.Reference}, userID, now); err != nil {
			return nil, err
		}
		if err := store.UpdateEntryHeader(ctx, entry); err != nil {
			return nil, err
		}
		return []domain.AuditLog{
			domain.NewAuditLog(entry.JournalEntryID, domain.AuditEdited, userID, now, "header patch", stringPtr(before), stringPtr(entry.Snapshot())),
		}, nil
	})
}

func (s *journalEntryService) BulkDeleteJournalEntries(ctx context.Context, entityID string, entryIDs []string, userID string) (int64, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("%w: unknown user", apperrors.ErrUnauthorized)
		}
		return 0, err
	}
	if !user.IsAdmin {
		return 0, fmt.Errorf("%w: bulk delete requires an administrator", apperrors.ErrForbidden)
	}
	ids := uniqueStrings(entryIDs)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one entry id is required", apperrors.ErrValidation)
	}

	var deleted int64
	err = s.entryRepo.WithinTx(ctx, func(store portsrepo.JournalEntryTxStore) error {
		headers, err := store.LockEntryHeaders(ctx, entityID, ids)
		if err != nil {
			return err
		}
		if len(headers) != len(ids) {
			return fmt.Errorf("%w: %d of %d entries not found", apperrors.ErrNotFound, len(ids)-len(headers), len(ids))
		}
		for i := range headers {
			if err := headers[i].EnsureUnlocked(); err != nil {
				return err
			}
		}
		deleted, err = store.DeleteEntries(ctx, entityID, ids)
		return err
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to bulk delete journal entries", slog.String("entity_id", entityID))
		return 0, err
	}

	s.LogInfo(ctx, "Journal entries deleted administratively",
		slog.String("entity_id", entityID),
		slog.String("user_id", userID),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

func (s *journalEntryService) GetJournalEntry(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entityID, entryID)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to get journal entry", slog.String("journal_entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

func (s *journalEntryService) ListJournalEntries(ctx context.Context, entityID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	filter := portsrepo.EntryListFilter{EntityID: entityID, FiscalYear: params.FiscalYear}
	if params.Status != "" {
		status := domain.EntryStatus(params.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to list journal entries", slog.String("entity_id", entityID))
		return nil, err
	}
	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *journalEntryService) ListAuditLogs(ctx context.Context, entityID, entryID string) ([]domain.AuditLog, error) {
	if _, err := s.entryRepo.FindEntryByID(ctx, entityID, entryID); err != nil {
		return nil, err
	}
	logs, err := s.entryRepo.ListAuditLogs(ctx, entryID)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to list audit logs", slog.String("journal_entry_id", entryID))
		return nil, err
	}
	if logs == nil {
		return []domain.AuditLog{}, nil
	}
	return logs, nil
}

type mutation func(store portsrepo.JournalEntryTxStore, entry *domain.JournalEntry, now time.Time) ([]domain.AuditLog, error)

// mutate locks the entry, applies fn and appends the audit rows fn returns, all in one unit of work.
func (s *journalEntryService) mutate(ctx context.Context, entityID, entryID, operation string, fn mutation) (*domain.JournalEntry, error) {
	var result *domain.JournalEntry
	err := s.entryRepo.WithinTx(ctx, func(store portsrepo.JournalEntryTxStore) error {
		entry, err := store.LockEntry(ctx, entityID, entryID)
		if err != nil {
			return err
		}
		logs, err := fn(store, entry, s.clock())
		if err != nil {
			return err
		}
		if len(logs) > 0 {
			if err := store.AppendAuditLogs(ctx, logs); err != nil {
				return err
			}
		}
		result = entry
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Journal entry "+operation+" failed",
			slog.String("journal_entry_id", entryID),
			slog.String("entity_id", entityID))
		return nil, err
	}
	s.LogDebug(ctx, "Journal entry "+operation+" committed",
		slog.String("journal_entry_id", entryID),
		slog.String("status", string(result.Status)))
	return result, nil
}

func (s *journalEntryService) ensureDocumentsExist(ctx context.Context, entityID string, documentIDs []string) error {
	if s.documentRepo == nil {
		return nil
	}
	found, err := s.documentRepo.FindExistingDocumentIDs(ctx, entityID, documentIDs)
	if err != nil {
		return err
	}
	for _, id := range documentIDs {
		if !found[id] {
			return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
		}
	}
	return nil
}

// logUnexpected logs errors that are not part of the caller-visible taxonomy.
func (s *journalEntryService) logUnexpected(ctx context.Context, err error, msg string, keyvals ...any) {
	for _, expected := range []error{
		apperrors.ErrValidation, apperrors.ErrInvalidState, apperrors.ErrForbidden,
		apperrors.ErrPreconditionFailed, apperrors.ErrNotFound, apperrors.ErrConflict,
		apperrors.ErrUnauthorized,
	} {
		if errors.Is(err, expected) {
			s.LogDebug(ctx, msg, append([]any{slog.String("reason", err.Error())}, keyvals...)...)
			return
		}
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func uniqueStrings(input []string) []string {
	seen := make(map[string]bool, len(input))
	out := make([]string, 0, len(input))
	for _, v := range input {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func stringPtr(s string) *string { return &s }
