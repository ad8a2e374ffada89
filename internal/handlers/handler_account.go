package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/dto"
)

// accountHandler serves the read-only chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountReaderSvc
}

func newAccountHandler(as portssvc.AccountReaderSvc) *accountHandler {
	return &accountHandler{accountService: as}
}

// RegisterAccountRoutes registers chart-of-accounts routes on an entity group.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountReaderSvc) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
	}
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger, _, ok := requestScope(c)
	if !ok {
		return
	}
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("entity_id"), accountID)
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Tags accounts
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param active_only query bool false "Only active accounts" default(true)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("entity_id"), params.ActiveOnly)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	logger.Debug("Accounts listed", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}
