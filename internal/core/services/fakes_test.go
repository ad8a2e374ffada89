package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
)

// --- In-memory journal entry store ---

// memJournalRepo mimics the Postgres unit of work: a unit of work sees its own writes and
// either commits all of them or none.
type memJournalRepo struct {
	mu         sync.Mutex
	entries    map[string]*domain.JournalEntry
	audit      []domain.AuditLog
	sequences  map[string]int
	auditSeq   int64
	maxRetries int

	// failAppend makes AppendAuditLogs fail, to prove the mutation is rolled back with it.
	failAppend error
}

func newMemJournalRepo() *memJournalRepo {
	return &memJournalRepo{
		entries:    map[string]*domain.JournalEntry{},
		sequences:  map[string]int{},
		maxRetries: 5,
	}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*memJournalRepo)(nil)

type memState struct {
	entries   map[string]*domain.JournalEntry
	audit     []domain.AuditLog
	sequences map[string]int
	auditSeq  int64
}

func (r *memJournalRepo) snapshot() memState {
	s := memState{
		entries:   make(map[string]*domain.JournalEntry, len(r.entries)),
		audit:     append([]domain.AuditLog(nil), r.audit...),
		sequences: make(map[string]int, len(r.sequences)),
		auditSeq:  r.auditSeq,
	}
	for id, e := range r.entries {
		s.entries[id] = e.Clone()
	}
	for k, v := range r.sequences {
		s.sequences[k] = v
	}
	return s
}

func (r *memJournalRepo) restore(s memState) {
	r.entries = s.entries
	r.audit = s.audit
	r.sequences = s.sequences
	r.auditSeq = s.auditSeq
}

func (r *memJournalRepo) WithinTx(ctx context.Context, fn func(store portsrepo.JournalEntryTxStore) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := r.snapshot()
	if err := fn(&memTxStore{repo: r}); err != nil {
		r.restore(before)
		return err
	}
	return nil
}

func (r *memJournalRepo) FindEntryByID(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok || e.EntityID != entityID {
		return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
	}
	return e.Clone(), nil
}

func (r *memJournalRepo) ListEntries(ctx context.Context, filter portsrepo.EntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.JournalEntry
	for _, e := range r.entries {
		if e.EntityID != filter.EntityID {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.FiscalYear != nil && e.FiscalYear != *filter.FiscalYear {
			continue
		}
		out = append(out, *e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryNumber > out[j].EntryNumber })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (r *memJournalRepo) ListAuditLogs(ctx context.Context, entryID string) ([]domain.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuditLog
	for _, l := range r.audit {
		if l.JournalEntryID == entryID {
			out = append(out, l)
		}
	}
	return out, nil
}

// seed stores an entry directly, bypassing numbering, for tests that need pre-existing rows.
func (r *memJournalRepo) seed(e *domain.JournalEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.JournalEntryID] = e.Clone()
}

func (r *memJournalRepo) auditActions(entryID string) []domain.AuditAction {
	logs, _ := r.ListAuditLogs(context.Background(), entryID)
	actions := make([]domain.AuditAction, len(logs))
	for i, l := range logs {
		actions[i] = l.Action
	}
	return actions
}

type memTxStore struct {
	repo *memJournalRepo
}

func (s *memTxStore) LockEntry(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error) {
	e, ok := s.repo.entries[entryID]
	if !ok || e.EntityID != entityID {
		return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
	}
	return e.Clone(), nil
}

func (s *memTxStore) LockEntryHeaders(ctx context.Context, entityID string, entryIDs []string) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	for _, id := range entryIDs {
		if e, ok := s.repo.entries[id]; ok && e.EntityID == entityID {
			out = append(out, *e.Clone())
		}
	}
	return out, nil
}

func (s *memTxStore) numberTaken(entityID, number, exceptID string) bool {
	for id, e := range s.repo.entries {
		if id != exceptID && e.EntityID == entityID && e.EntryNumber == number {
			return true
		}
	}
	return false
}

func (s *memTxStore) assignNumber(entry *domain.JournalEntry) error {
	key := fmt.Sprintf("%s|%d", entry.EntityID, entry.FiscalYear)
	for attempt := 1; ; attempt++ {
		s.repo.sequences[key]++
		number := domain.FormatEntryNumber(entry.FiscalYear, s.repo.sequences[key])
		if !s.numberTaken(entry.EntityID, number, entry.JournalEntryID) {
			entry.EntryNumber = number
			return nil
		}
		if attempt >= s.repo.maxRetries {
			return apperrors.NewConflictError("could not assign a unique entry number")
		}
	}
}

func (s *memTxStore) InsertEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if err := s.assignNumber(entry); err != nil {
		return err
	}
	s.repo.entries[entry.JournalEntryID] = entry.Clone()
	return nil
}

func (s *memTxStore) RenumberEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if err := s.assignNumber(entry); err != nil {
		return err
	}
	stored, ok := s.repo.entries[entry.JournalEntryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.EntryNumber = entry.EntryNumber
	stored.FiscalYear = entry.FiscalYear
	stored.FiscalPeriod = entry.FiscalPeriod
	return nil
}

func (s *memTxStore) UpdateEntryHeader(ctx context.Context, entry *domain.JournalEntry) error {
	stored, ok := s.repo.entries[entry.JournalEntryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	header := entry.Clone()
	header.Lines = stored.Lines
	header.Attachments = stored.Attachments
	s.repo.entries[entry.JournalEntryID] = header
	return nil
}

func (s *memTxStore) ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error {
	stored, ok := s.repo.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.Lines = append([]domain.JournalEntryLine(nil), lines...)
	return nil
}

func (s *memTxStore) ReplaceAttachments(ctx context.Context, entryID string, attachments []domain.JournalEntryAttachment) error {
	stored, ok := s.repo.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.Attachments = append([]domain.JournalEntryAttachment(nil), attachments...)
	return nil
}

func (s *memTxStore) AppendAuditLogs(ctx context.Context, logs []domain.AuditLog) error {
	if s.repo.failAppend != nil {
		return s.repo.failAppend
	}
	for _, l := range logs {
		s.repo.auditSeq++
		l.Sequence = s.repo.auditSeq
		s.repo.audit = append(s.repo.audit, l)
	}
	return nil
}

func (s *memTxStore) DeleteEntries(ctx context.Context, entityID string, entryIDs []string) (int64, error) {
	var n int64
	for _, id := range entryIDs {
		if e, ok := s.repo.entries[id]; ok && e.EntityID == entityID {
			delete(s.repo.entries, id)
			n++
		}
	}
	kept := s.repo.audit[:0]
	for _, l := range s.repo.audit {
		if _, ok := s.repo.entries[l.JournalEntryID]; ok {
			kept = append(kept, l)
		}
	}
	s.repo.audit = kept
	return n, nil
}

// --- Mocks ---

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, entityID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, entityID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, entityID string, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, entityID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpsertAccounts(ctx context.Context, accounts []domain.Account) (int, error) {
	args := m.Called(ctx, accounts)
	return args.Int(0), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockDocumentReader is a mock type for the DocumentReader interface
type MockDocumentReader struct {
	mock.Mock
}

func (m *MockDocumentReader) FindExistingDocumentIDs(ctx context.Context, entityID string, documentIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, entityID, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockEntityReader is a mock type for the EntityReader interface
type MockEntityReader struct {
	mock.Mock
}

func (m *MockEntityReader) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) ListPostedLines(ctx context.Context, entityID string, period domain.DateRange) ([]domain.PostedLine, error) {
	args := m.Called(ctx, entityID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLine), args.Error(1)
}

// staticLabels is a fixed taxonomy label provider.
type staticLabels map[string]string

func (l staticLabels) StandardLabel(name string) (string, bool) {
	v, ok := l[name]
	return v, ok
}

var errAuditStoreDown = errors.New("audit store unavailable")
