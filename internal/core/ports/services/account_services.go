package services

import (
	"context"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/SscSPs/current_account_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves an account with its transaction history.
	GetAccount(ctx context.Context, number string) (*domain.Account, error)

	// FindAccount retrieves an account without loading its transactions.
	FindAccount(ctx context.Context, number string) (*domain.Account, error)
}

// AccountWriterSvc defines lifecycle operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account, filling defaults for omitted fields.
	CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account together with its transactions and their audit entries.
	DeleteAccount(ctx context.Context, number string) error
}

// AccountMutatorSvc defines the single-field mutation primitives used by the transaction engine.
// Callers are expected to hold the account lock.
type AccountMutatorSvc interface {
	SetBalance(ctx context.Context, number string, balance decimal.Decimal) error
	SetCreditLimit(ctx context.Context, number string, creditLimit decimal.Decimal) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountMutatorSvc
}
