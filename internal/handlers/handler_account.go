package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/current_account_engine/internal/core/ports/services"
	"github.com/SscSPs/current_account_engine/internal/dto"
	"github.com/SscSPs/current_account_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:number", h.getAccount)
		accounts.DELETE("/:number", h.deleteAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to create account", slog.String("account_number", req.Number))

	account, err := h.accountService.CreateAccount(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	number := c.Param("number")

	account, err := h.accountService.GetAccount(c.Request.Context(), number)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number := c.Param("number")
	logger.Info("Received request to delete account", slog.String("account_number", number))

	if err := h.accountService.DeleteAccount(c.Request.Context(), number); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}
