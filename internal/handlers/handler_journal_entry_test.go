package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	"github.com/SscSPs/holdco_books/internal/dto"
	"github.com/SscSPs/holdco_books/internal/handlers"
)

type JournalEntryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockJournalEntryService
	userID      string
	token       string
	entityID    string
}

func (suite *JournalEntryHandlerTestSuite) SetupTest() {
	var entity *gin.RouterGroup
	suite.router, _, entity = newAuthedRouter()
	suite.mockService = new(MockJournalEntryService)
	handlers.RegisterJournalEntryRoutes(entity, suite.mockService)

	suite.userID = uuid.NewString()
	suite.token = generateTestToken(suite.userID)
	suite.entityID = "ent-holdco"
}

func (suite *JournalEntryHandlerTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *JournalEntryHandlerTestSuite) url(format string, args ...any) string {
	return fmt.Sprintf("/api/v1/entities/%s/journal-entries", suite.entityID) + fmt.Sprintf(format, args...)
}

func (suite *JournalEntryHandlerTestSuite) sampleEntry(status domain.EntryStatus) *domain.JournalEntry {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	return &domain.JournalEntry{
		JournalEntryID: "je-1",
		EntityID:       suite.entityID,
		EntryNumber:    "JE-2025-000001",
		EntryDate:      date,
		FiscalYear:     2025,
		FiscalPeriod:   3,
		EntryType:      domain.EntryTypeStandard,
		SourceType:     domain.SourceManualEntry,
		Status:         status,
		IsLocked:       status == domain.StatusPosted,
		CreatedByID:    suite.userID,
		Lines: []domain.JournalEntryLine{
			{LineNumber: 1, AccountID: "acc-cash", DebitAmount: decimal.RequireFromString("500.00"), CreditAmount: decimal.Zero},
			{LineNumber: 2, AccountID: "acc-revenue", DebitAmount: decimal.Zero, CreditAmount: decimal.RequireFromString("500.00")},
		},
		AuditFields: domain.AuditFields{CreatedAt: date, CreatedBy: suite.userID, LastUpdatedAt: date, LastUpdatedBy: suite.userID},
	}
}

func balancedBody() map[string]any {
	return map[string]any{
		"entry_date": "2025-03-14",
		"memo":       "Management fee",
		"lines": []map[string]any{
			{"account_id": "acc-cash", "debit_amount": "500.00", "credit_amount": "0"},
			{"account_id": "acc-revenue", "debit_amount": "0", "credit_amount": "500.00"},
		},
	}
}

func (suite *JournalEntryHandlerTestSuite) decodeEntry(body []byte) dto.JournalEntryResponse {
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(body, &resp))
	return resp
}

// --- Create ---

func (suite *JournalEntryHandlerTestSuite) TestCreate_Success() {
	suite.mockService.On("CreateJournalEntry", mock.Anything, suite.entityID,
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
			return req.EntryDate == "2025-03-14" && len(req.Lines) == 2 &&
				req.Lines[0].DebitAmount.Equal(decimal.RequireFromString("500"))
		}),
		suite.userID,
	).Return(suite.sampleEntry(domain.StatusDraft), nil).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url(""), balancedBody(), suite.token)

	suite.Equal(http.StatusCreated, w.Code)
	resp := suite.decodeEntry(w.Body.Bytes())
	suite.Equal("JE-2025-000001", resp.EntryNumber)
	suite.Equal("draft", resp.Status)
	suite.Equal("500.00", resp.TotalDebits)
	suite.Equal("500.00", resp.TotalCredits)
	suite.Equal(0, resp.WorkflowStage)
	suite.Len(resp.Lines, 2)
}

func (suite *JournalEntryHandlerTestSuite) TestCreate_RejectsBadAmounts() {
	tests := []struct {
		name   string
		amount string
	}{
		{"negative", "-5.00"},
		{"three decimals", "1.005"},
	}
	for _, tc := range tests {
		suite.Run(tc.name, func() {
			body := balancedBody()
			body["lines"].([]map[string]any)[0]["debit_amount"] = tc.amount

			w := doRequest(suite.router, http.MethodPost, suite.url(""), body, suite.token)

			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Contains(w.Body.String(), "money")
		})
	}
	suite.mockService.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryHandlerTestSuite) TestCreate_RejectsMalformedBody() {
	w := doRequest(suite.router, http.MethodPost, suite.url(""), `{"entry_date":"14/03/2025","lines":[]}`, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = doRequest(suite.router, http.MethodPost, suite.url(""), `{not json`, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalEntryHandlerTestSuite) TestCreate_RequiresToken() {
	w := doRequest(suite.router, http.MethodPost, suite.url(""), balancedBody(), "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = doRequest(suite.router, http.MethodPost, suite.url(""), balancedBody(), "not-a-jwt")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *JournalEntryHandlerTestSuite) TestCreate_MapsErrorTaxonomy() {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"unbalanced", fmt.Errorf("%w: entry is unbalanced", apperrors.ErrValidation), http.StatusBadRequest, "unbalanced"},
		{"unknown account", fmt.Errorf("%w: account acc-x", apperrors.ErrNotFound), http.StatusNotFound, "acc-x"},
		{"number conflict", fmt.Errorf("%w: could not assign entry number", apperrors.ErrConflict), http.StatusConflict, "entry number"},
		{"internal", fmt.Errorf("connection reset by peer"), http.StatusInternalServerError, "Failed to create journal entry"},
	}
	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.mockService.On("CreateJournalEntry", mock.Anything, suite.entityID, mock.Anything, suite.userID).
				Return(nil, tc.err).Once()

			w := doRequest(suite.router, http.MethodPost, suite.url(""), balancedBody(), suite.token)

			suite.Equal(tc.status, w.Code)
			suite.Contains(w.Body.String(), tc.body)
		})
	}
}

func (suite *JournalEntryHandlerTestSuite) TestCreate_InternalErrorHidesDetail() {
	suite.mockService.On("CreateJournalEntry", mock.Anything, suite.entityID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("pq: relation journal_entries does not exist")).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url(""), balancedBody(), suite.token)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "relation")
}

// --- Reads ---

func (suite *JournalEntryHandlerTestSuite) TestGet_Success() {
	suite.mockService.On("GetJournalEntry", mock.Anything, suite.entityID, "je-1").
		Return(suite.sampleEntry(domain.StatusPosted), nil).Once()

	w := doRequest(suite.router, http.MethodGet, suite.url("/je-1"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	resp := suite.decodeEntry(w.Body.Bytes())
	suite.Equal("posted", resp.Status)
	suite.True(resp.IsLocked)
	suite.Equal(4, resp.WorkflowStage)
}

func (suite *JournalEntryHandlerTestSuite) TestGet_NotFound() {
	suite.mockService.On("GetJournalEntry", mock.Anything, suite.entityID, "missing").
		Return(nil, fmt.Errorf("%w: journal entry missing", apperrors.ErrNotFound)).Once()

	w := doRequest(suite.router, http.MethodGet, suite.url("/missing"), nil, suite.token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalEntryHandlerTestSuite) TestList_PassesFilters() {
	next := "tok-2"
	suite.mockService.On("ListJournalEntries", mock.Anything, suite.entityID,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.Status == "posted" && p.FiscalYear != nil && *p.FiscalYear == 2025 && p.Limit == 5
		}),
	).Return(&dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses([]domain.JournalEntry{*suite.sampleEntry(domain.StatusPosted)}),
		NextToken: &next,
	}, nil).Once()

	w := doRequest(suite.router, http.MethodGet, suite.url("?status=posted&fiscal_year=2025&limit=5"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("tok-2", *resp.NextToken)
}

func (suite *JournalEntryHandlerTestSuite) TestList_DefaultLimit() {
	suite.mockService.On("ListJournalEntries", mock.Anything, suite.entityID,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool { return p.Limit == 20 }),
	).Return(&dto.ListJournalEntriesResponse{Entries: []dto.JournalEntryResponse{}}, nil).Once()

	w := doRequest(suite.router, http.MethodGet, suite.url(""), nil, suite.token)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *JournalEntryHandlerTestSuite) TestList_RejectsUnknownStatus() {
	w := doRequest(suite.router, http.MethodGet, suite.url("?status=approved"), nil, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalEntryHandlerTestSuite) TestListAuditLogs() {
	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	suite.mockService.On("ListAuditLogs", mock.Anything, suite.entityID, "je-1").Return([]domain.AuditLog{
		{AuditLogID: "a1", JournalEntryID: "je-1", Action: domain.AuditCreated, PerformedByID: suite.userID, PerformedAt: at, Sequence: 1},
		{AuditLogID: "a2", JournalEntryID: "je-1", Action: domain.AuditSubmitted, PerformedByID: suite.userID, PerformedAt: at, Sequence: 2},
	}, nil).Once()

	w := doRequest(suite.router, http.MethodGet, suite.url("/je-1/audit"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	var logs []dto.AuditLogResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &logs))
	suite.Len(logs, 2)
}

// --- Edits ---

func (suite *JournalEntryHandlerTestSuite) TestUpdate_LockedEntry() {
	suite.mockService.On("UpdateJournalEntry", mock.Anything, suite.entityID, "je-1", mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: entry JE-2025-000001 is posted", apperrors.ErrInvalidState)).Once()

	w := doRequest(suite.router, http.MethodPut, suite.url("/je-1"), map[string]any{"memo": "late edit"}, suite.token)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "posted")
}

func (suite *JournalEntryHandlerTestSuite) TestPatch_SetsDocument() {
	doc := "doc-1"
	patched := suite.sampleEntry(domain.StatusDraft)
	patched.DocumentID = &doc
	suite.mockService.On("PatchJournalEntry", mock.Anything, suite.entityID, "je-1",
		mock.MatchedBy(func(req dto.PatchJournalEntryRequest) bool {
			return req.DocumentID != nil && *req.DocumentID == doc && req.Memo == nil
		}),
		suite.userID,
	).Return(patched, nil).Once()

	w := doRequest(suite.router, http.MethodPatch, suite.url("/je-1"), map[string]any{"document_id": doc}, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	resp := suite.decodeEntry(w.Body.Bytes())
	suite.Require().NotNil(resp.DocumentID)
	suite.Equal(doc, *resp.DocumentID)
}

func (suite *JournalEntryHandlerTestSuite) TestBulkDelete() {
	ids := []string{uuid.NewString(), uuid.NewString()}
	suite.mockService.On("BulkDeleteJournalEntries", mock.Anything, suite.entityID, ids, suite.userID).
		Return(int64(2), nil).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url("/bulk-delete"), map[string]any{"ids": ids}, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"deleted":2}`, w.Body.String())
}

func (suite *JournalEntryHandlerTestSuite) TestBulkDelete_ValidatesIDs() {
	w := doRequest(suite.router, http.MethodPost, suite.url("/bulk-delete"), map[string]any{"ids": []string{"not-a-uuid"}}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = doRequest(suite.router, http.MethodPost, suite.url("/bulk-delete"), map[string]any{"ids": []string{}}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalEntryHandlerTestSuite) TestBulkDelete_Forbidden() {
	ids := []string{uuid.NewString()}
	suite.mockService.On("BulkDeleteJournalEntries", mock.Anything, suite.entityID, ids, suite.userID).
		Return(int64(0), fmt.Errorf("%w: administrator required", apperrors.ErrForbidden)).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url("/bulk-delete"), map[string]any{"ids": ids}, suite.token)

	suite.Equal(http.StatusForbidden, w.Code)
}

// --- Workflow ---

func (suite *JournalEntryHandlerTestSuite) TestSubmit_Success() {
	suite.mockService.On("SubmitJournalEntry", mock.Anything, suite.entityID, "je-1", suite.userID).
		Return(suite.sampleEntry(domain.StatusPendingFirstApproval), nil).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url("/je-1/submit"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	resp := suite.decodeEntry(w.Body.Bytes())
	suite.Equal("pending_first_approval", resp.Status)
	suite.Equal(1, resp.WorkflowStage)
}

func (suite *JournalEntryHandlerTestSuite) TestSubmit_MissingDocument() {
	suite.mockService.On("SubmitJournalEntry", mock.Anything, suite.entityID, "je-1", suite.userID).
		Return(nil, fmt.Errorf("%w: Supporting document required", apperrors.ErrPreconditionFailed)).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url("/je-1/submit"), nil, suite.token)

	suite.Equal(http.StatusPreconditionFailed, w.Code)
	suite.Contains(w.Body.String(), "Supporting document required")
}

func (suite *JournalEntryHandlerTestSuite) TestApprove_Success() {
	suite.mockService.On("ApproveJournalEntry", mock.Anything, suite.entityID, "je-1", "controller@example.com", suite.userID).
		Return(suite.sampleEntry(domain.StatusPendingFinalApproval), nil).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url("/je-1/approve"),
		map[string]any{"approver_identity": "controller@example.com"}, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(2, suite.decodeEntry(w.Body.Bytes()).WorkflowStage)
}

func (suite *JournalEntryHandlerTestSuite) TestApprove_SelfApproval() {
	suite.mockService.On("ApproveJournalEntry", mock.Anything, suite.entityID, "je-1", "preparer@example.com", suite.userID).
		Return(nil, fmt.Errorf("%w: self-approval not allowed", apperrors.ErrForbidden)).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url("/je-1/approve"),
		map[string]any{"approver_identity": "preparer@example.com"}, suite.token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "self-approval")
}

func (suite *JournalEntryHandlerTestSuite) TestApprove_RequiresEmailIdentity() {
	w := doRequest(suite.router, http.MethodPost, suite.url("/je-1/approve"), map[string]any{"approver_identity": "bob"}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalEntryHandlerTestSuite) TestApprove_WrongState() {
	suite.mockService.On("ApproveJournalEntry", mock.Anything, suite.entityID, "je-1", "controller@example.com", suite.userID).
		Return(nil, fmt.Errorf("%w: entry is draft", apperrors.ErrInvalidState)).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url("/je-1/approve"),
		map[string]any{"approver_identity": "controller@example.com"}, suite.token)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalEntryHandlerTestSuite) TestReject_Success() {
	rejected := suite.sampleEntry(domain.StatusDraft)
	reason := "wrong period"
	rejected.RejectionReason = &reason
	suite.mockService.On("RejectJournalEntry", mock.Anything, suite.entityID, "je-1", reason, suite.userID).
		Return(rejected, nil).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url("/je-1/reject"), map[string]any{"reason": reason}, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	resp := suite.decodeEntry(w.Body.Bytes())
	suite.Equal("draft", resp.Status)
	suite.Require().NotNil(resp.RejectionReason)
	suite.Equal(reason, *resp.RejectionReason)
}

func (suite *JournalEntryHandlerTestSuite) TestReject_RequiresReason() {
	w := doRequest(suite.router, http.MethodPost, suite.url("/je-1/reject"), map[string]any{}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Attachments ---

func (suite *JournalEntryHandlerTestSuite) TestAttachDocuments() {
	withDocs := suite.sampleEntry(domain.StatusDraft)
	withDocs.Attachments = []domain.JournalEntryAttachment{
		{JournalEntryID: "je-1", DocumentID: "doc-1", DisplayOrder: 1, IsPrimary: true},
	}
	suite.mockService.On("AttachDocuments", mock.Anything, suite.entityID, "je-1",
		mock.MatchedBy(func(req dto.AttachDocumentsRequest) bool {
			return len(req.DocumentIDs) == 1 && req.DocumentIDs[0] == "doc-1"
		}),
		suite.userID,
	).Return(withDocs, nil).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url("/je-1/attachments"), map[string]any{"document_ids": []string{"doc-1"}}, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	resp := suite.decodeEntry(w.Body.Bytes())
	suite.Require().Len(resp.Attachments, 1)
	suite.True(resp.Attachments[0].IsPrimary)
}

func (suite *JournalEntryHandlerTestSuite) TestDetachDocument() {
	suite.mockService.On("DetachDocument", mock.Anything, suite.entityID, "je-1", "doc-1", suite.userID).
		Return(suite.sampleEntry(domain.StatusDraft), nil).Once()

	w := doRequest(suite.router, http.MethodDelete, suite.url("/je-1/attachments/doc-1"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *JournalEntryHandlerTestSuite) TestReorderAttachments_Locked() {
	suite.mockService.On("ReorderAttachments", mock.Anything, suite.entityID, "je-1", mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: entry is locked", apperrors.ErrInvalidState)).Once()

	w := doRequest(suite.router, http.MethodPatch, suite.url("/je-1/attachments/reorder"),
		map[string]any{"document_ids": []string{"doc-2", "doc-1"}}, suite.token)

	suite.Equal(http.StatusConflict, w.Code)
}

func TestJournalEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryHandlerTestSuite))
}
