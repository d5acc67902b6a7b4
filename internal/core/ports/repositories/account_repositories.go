package repositories

import (
	"context"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves an account without its transactions.
	// Returns apperrors.ErrNotFound when the number does not resolve.
	FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate if the number exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateBalance overwrites the balance of an existing account.
	UpdateBalance(ctx context.Context, number string, balance decimal.Decimal) error

	// UpdateCreditLimit overwrites the available credit of an existing account.
	UpdateCreditLimit(ctx context.Context, number string, creditLimit decimal.Decimal) error

	// DeleteAccount removes the account record only.
	DeleteAccount(ctx context.Context, number string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
