package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/holdco_books/internal/core/domain"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/dto"
)

// reportingHandler exposes posted ledger lines to report builders
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// RegisterReportingRoutes registers reporting routes on an entity group.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)
	rg.GET("/posted-lines", h.listPostedLines)
}

// listPostedLines godoc
// @Summary List posted ledger lines
// @Description Returns every line of posted entries whose entry date falls in the inclusive range
// @Tags reports
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.PostedLinesResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/posted-lines [get]
func (h *reportingHandler) listPostedLines(c *gin.Context) {
	logger, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.PostedLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}
	// datetime binding already checked both layouts
	start, _ := time.Parse(dto.DateLayout, params.Start)
	end, _ := time.Parse(dto.DateLayout, params.End)
	period := domain.DateRange{Start: start, End: end}

	lines, err := h.reportingService.ListPostedLines(c.Request.Context(), c.Param("entity_id"), period)
	if err != nil {
		respondError(c, logger, err, "Failed to list posted lines")
		return
	}
	logger.Info("Posted lines listed", slog.String("start", params.Start), slog.String("end", params.End), slog.Int("count", len(lines)))
	c.JSON(http.StatusOK, dto.ToPostedLinesResponse(lines, period))
}
