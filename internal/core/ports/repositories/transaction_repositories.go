package repositories

import (
	"context"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
)

// TransactionReader defines read operations for transaction records
type TransactionReader interface {
	// FindTransactionsByOrigin returns the transactions owned by an account in creation order.
	FindTransactionsByOrigin(ctx context.Context, accountNumber string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction records
type TransactionWriter interface {
	// SaveTransaction appends a transaction record.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransactionsByOrigin removes every transaction owned by an account.
	DeleteTransactionsByOrigin(ctx context.Context, accountNumber string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
