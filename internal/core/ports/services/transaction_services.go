package services

import (
	"context"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionSvcFacade defines the monetary operations of the transaction engine.
type TransactionSvcFacade interface {
	Deposit(ctx context.Context, number string, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, number string, amount decimal.Decimal) (*domain.Transaction, error)
	Transfer(ctx context.Context, origin string, destination string, amount decimal.Decimal) (*domain.Transaction, error)
}

// BatchTransferSvc runs independent transfers concurrently.
type BatchTransferSvc interface {
	// BatchTransfer never fails as a whole; per-item failures are reported in the result.
	BatchTransfer(ctx context.Context, requests []domain.TransferRequest) domain.BatchResult
}
