package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/current_account_engine/internal/core/ports/services"
	"github.com/SscSPs/current_account_engine/internal/dto"
	"github.com/SscSPs/current_account_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// transactionHandler handles the monetary operations.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	batchService       portssvc.BatchTransferSvc
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, bs portssvc.BatchTransferSvc) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		batchService:       bs,
	}
}

// RegisterTransactionRoutes registers deposit, withdrawal, transfer and batch routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, bs portssvc.BatchTransferSvc) {
	h := newTransactionHandler(ts, bs)

	txns := rg.Group("/transactions")
	{
		txns.POST("/deposit", h.deposit)
		txns.POST("/withdrawal", h.withdraw)
		txns.POST("/transfer", h.transfer)
		txns.POST("/batch", h.batchTransfer)
	}
}

func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func (h *transactionHandler) deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.transactionService.Deposit(c.Request.Context(), req.AccountNumber, amountOrZero(req.Amount))
	if err != nil {
		respondError(c, err, "Failed to process deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) withdraw(c *gin.Context) {
	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.transactionService.Withdraw(c.Request.Context(), req.AccountNumber, amountOrZero(req.Amount))
	if err != nil {
		respondError(c, err, "Failed to process withdrawal")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	t := req.ToDomainTransfer()
	txn, err := h.transactionService.Transfer(c.Request.Context(), t.OriginAccount, t.DestinationAccount, t.Amount)
	if err != nil {
		respondError(c, err, "Failed to process transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) batchTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received batch transfer", slog.Int("items", len(req.Transfers)))
	result := h.batchService.BatchTransfer(c.Request.Context(), req.ToDomainTransfers())
	c.JSON(http.StatusOK, dto.ToBatchTransferResponse(result))
}
