package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/holdco_books/internal/dto"
)

// attachDocuments godoc
// @Summary Attach supporting documents
// @Description Links documents to an entry. Already linked documents are ignored.
// @Tags attachments
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Param request body dto.AttachDocumentsRequest true "Documents"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Entry or document not found"
// @Failure 409 {object} ErrorResponse "Entry is locked"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id}/attachments [post]
func (h *journalEntryHandler) attachDocuments(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.AttachDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	entry, err := h.journalService.AttachDocuments(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to attach documents")
		return
	}
	logger.Info("Documents attached", slog.Int("attachments", len(entry.Attachments)))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// detachDocument godoc
// @Summary Detach a supporting document
// @Tags attachments
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Param document_id path string true "Document ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is locked"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id}/attachments/{document_id} [delete]
func (h *journalEntryHandler) detachDocument(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	entry, err := h.journalService.DetachDocument(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"), c.Param("document_id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to detach document")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reorderAttachments godoc
// @Summary Reorder attachments
// @Description Listed documents move to the front in the given order; optionally sets the primary document.
// @Tags attachments
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param entry_id path string true "Journal entry ID"
// @Param request body dto.ReorderAttachmentsRequest true "New order"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is locked"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/journal-entries/{entry_id}/attachments/reorder [patch]
func (h *journalEntryHandler) reorderAttachments(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.ReorderAttachmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	entry, err := h.journalService.ReorderAttachments(c.Request.Context(), c.Param("entity_id"), c.Param("entry_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reorder attachments")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
