package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/holdco_books/internal/core/domain"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/dto"
	"github.com/SscSPs/holdco_books/internal/handlers"
	"github.com/SscSPs/holdco_books/internal/middleware"
	"github.com/SscSPs/holdco_books/internal/utils"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "holdco-test"
)

// --- Mock JournalEntryService ---
type MockJournalEntryService struct {
	mock.Mock
}

func (m *MockJournalEntryService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) GetJournalEntry(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, entryID))
}
func (m *MockJournalEntryService) ListJournalEntries(ctx context.Context, entityID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, entityID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalEntryService) ListAuditLogs(ctx context.Context, entityID, entryID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, entityID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}
func (m *MockJournalEntryService) CreateJournalEntry(ctx context.Context, entityID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, req, creatorUserID))
}
func (m *MockJournalEntryService) UpdateJournalEntry(ctx context.Context, entityID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, entryID, req, userID))
}
func (m *MockJournalEntryService) PatchJournalEntry(ctx context.Context, entityID, entryID string, req dto.PatchJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, entryID, req, userID))
}
func (m *MockJournalEntryService) BulkDeleteJournalEntries(ctx context.Context, entityID string, entryIDs []string, userID string) (int64, error) {
	args := m.Called(ctx, entityID, entryIDs, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockJournalEntryService) SubmitJournalEntry(ctx context.Context, entityID, entryID, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, entryID, userID))
}
func (m *MockJournalEntryService) ApproveJournalEntry(ctx context.Context, entityID, entryID, approverIdentity, callerUserID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, entryID, approverIdentity, callerUserID))
}
func (m *MockJournalEntryService) RejectJournalEntry(ctx context.Context, entityID, entryID, reason, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, entryID, reason, userID))
}
func (m *MockJournalEntryService) AttachDocuments(ctx context.Context, entityID, entryID string, req dto.AttachDocumentsRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, entryID, req, userID))
}
func (m *MockJournalEntryService) DetachDocument(ctx context.Context, entityID, entryID, documentID, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, entryID, documentID, userID))
}
func (m *MockJournalEntryService) ReorderAttachments(ctx context.Context, entityID, entryID string, req dto.ReorderAttachmentsRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entityID, entryID, req, userID))
}

var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, entityID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, entityID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, entityID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, entityID string, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, entityID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) SeedAccounts(ctx context.Context, entityID string, accounts []domain.Account, userID string) (int, error) {
	args := m.Called(ctx, entityID, accounts, userID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock AuthService / UserService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", time.Time{}, args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Get(2).(time.Time), args.Error(3)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, email, name, password string, isAdmin bool) (*domain.User, error) {
	args := m.Called(ctx, email, name, password, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ListPostedLines(ctx context.Context, entityID string, period domain.DateRange) ([]domain.PostedLine, error) {
	args := m.Called(ctx, entityID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLine), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- helpers ---

// newAuthedRouter returns a test engine with the auth middleware and an entity group.
func newAuthedRouter() (*gin.Engine, *gin.RouterGroup, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	if err := handlers.RegisterValidators(); err != nil {
		panic(err)
	}
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testSecret, testIssuer))
	return r, v1, v1.Group("/entities/:entity_id")
}

// generateTestToken signs a token the same way the login flow does.
func generateTestToken(userID string) string {
	token, _, err := utils.GenerateJWT(userID, testSecret, time.Hour, testIssuer)
	if err != nil {
		panic(err)
	}
	return token
}

// doRequest serves one request; body is JSON-encoded unless nil, token is skipped when empty.
func doRequest(r http.Handler, method, url string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				panic(err)
			}
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
