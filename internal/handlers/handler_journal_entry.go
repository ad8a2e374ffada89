package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/dto"
	"github.com/SscSPs/holdco_books/internal/middleware"
)

// journalEntryHandler handles HTTP requests for the journal entry lifecycle.
type journalEntryHandler struct {
	journalService portssvc.JournalEntrySvcFacade
}

func newJournalEntryHandler(js portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{journalService: js}
}

// RegisterJournalEntryRoutes registers journal entry, workflow and attachment routes on an entity group.
func RegisterJournalEntryRoutes(rg *gin.RouterGroup, journalService portssvc.JournalEntrySvcFacade) {
	h := newJournalEntryHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.POST("/bulk-delete", h.bulkDeleteJournalEntries)
		entries.GET("/:entry_id", h.getJournalEntry)
		entries.PUT("/:entry_id", h.updateJournalEntry)
		entries.PATCH("/:entry_id", h.patchJournalEntry)
		entries.POST("/:entry_id/submit", h.submitJournalEntry)
		entries.POST("/:entry_id/approve", h.approveJournalEntry)
		entries.POST("/:entry_id/reject", h.rejectJournalEntry)
		entries.GET("/:entry_id/audit", h.listAuditLogs)

		entries.POST("/:entry_id/attachments", h.attachDocuments)
		entries.PATCH("/:entry_id/attachments/reorder", h.reorderAttachments)
		entries.DELETE("/:entry_id/attachments/:document_id", h.detachDocument)
	}
}

// requestScope returns the logger, the authenticated user and the path ids shared by every route.
func requestScope(c *gin.Context) (*slog.Logger, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("entity_id", c.Param("entity_id")),
	)
	if id := c.Param("entry_id"); id != "" {
		logger = logger.With(slog.String("journal_entry_id", id))
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return logger, "", false
	}
	return logger, userID, true
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Validates and stores a new draft entry. Lines must balance exactly.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry body dto.CreateJournalEntryRequest true "Entry and lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Validation error, e.g. unbalanced lines"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Referenced account not found"
// @Failure 409 {object} ErrorResponse "Entry number could not be assigned"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries [post]
func (h *journalEntryHandler) createJournalEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), c.Param("entity_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}
	logger.Info("Journal entry created", slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entry headers newest first with cursor pagination
// @Tags journal-entries
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param status query string false "Filter by status"
// @Param fiscal_year query int false "Filter by fiscal year"
// @Param limit query int false "Page size" default(20)
// @Param next_token query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries [get]
func (h *journalEntryHandler) listJournalEntries(c *gin.Context) {
	logger, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), c.Param("entity_id"), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id} [get]
func (h *journalEntryHandler) getJournalEntry(c *gin.Context) {
	logger, _, ok := requestScope(c)
	if !ok {
		return
	}
	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateJournalEntry godoc
// @Summary Update a draft journal entry
// @Description Full update of a draft. A lines array replaces every line.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not a draft"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id} [put]
func (h *journalEntryHandler) updateJournalEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// patchJournalEntry godoc
// @Summary Patch journal entry header
// @Description Updates document, memo or reference of any entry that is not posted
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Param entry body dto.PatchJournalEntryRequest true "Header fields"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is locked"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id} [patch]
func (h *journalEntryHandler) patchJournalEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.PatchJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	entry, err := h.journalService.PatchJournalEntry(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to patch journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// submitJournalEntry godoc
// @Summary Submit a draft for approval
// @Tags journal-entries
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Entry is unbalanced"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not a draft"
// @Failure 412 {object} ErrorResponse "Supporting document required"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id}/submit [post]
func (h *journalEntryHandler) submitJournalEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	entry, err := h.journalService.SubmitJournalEntry(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to submit journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// approveJournalEntry godoc
// @Summary Approve a pending journal entry
// @Description First approval moves to pending_final_approval; final approval posts and locks the entry.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Param approval body dto.ApproveJournalEntryRequest true "Approver identity"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Segregation of duties violated"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not pending"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id}/approve [post]
func (h *journalEntryHandler) approveJournalEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.ApproveJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	entry, err := h.journalService.ApproveJournalEntry(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"), req.ApproverIdentity, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to approve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// rejectJournalEntry godoc
// @Summary Reject a pending journal entry
// @Description Returns the entry to draft and clears both approvals
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Param rejection body dto.RejectJournalEntryRequest true "Reason"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not pending"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id}/reject [post]
func (h *journalEntryHandler) rejectJournalEntry(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.RejectJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	entry, err := h.journalService.RejectJournalEntry(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"), req.Reason, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reject journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listAuditLogs godoc
// @Summary Audit trail of a journal entry
// @Tags journal-entries
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Success 200 {array} dto.AuditLogResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id}/audit [get]
func (h *journalEntryHandler) listAuditLogs(c *gin.Context) {
	logger, _, ok := requestScope(c)
	if !ok {
		return
	}
	logs, err := h.journalService.ListAuditLogs(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditLogResponses(logs))
}

// bulkDeleteJournalEntries godoc
// @Summary Bulk delete journal entries
// @Description Administrative removal of entries that are not posted. All or nothing.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param request body dto.BulkDeleteJournalEntriesRequest true "Entry IDs"
// @Success 200 {object} dto.BulkDeleteJournalEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Administrator required"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A listed entry is posted"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/bulk-delete [post]
func (h *journalEntryHandler) bulkDeleteJournalEntries(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.BulkDeleteJournalEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	deleted, err := h.journalService.BulkDeleteJournalEntries(c.Request.Context(), c.Param("entity_id"), req.IDs, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to delete journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.BulkDeleteJournalEntriesResponse{Deleted: deleted})
}
