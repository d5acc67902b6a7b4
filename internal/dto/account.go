package dto

import (
	"time"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Pointer fields are optional; the service fills defaults when they are nil.
type CreateAccountRequest struct {
	Number        string           `json:"number" binding:"required,max=64"`
	Balance       *decimal.Decimal `json:"balance" binding:"omitempty,dnonnegative"`
	CreditLimit   *decimal.Decimal `json:"creditLimit" binding:"omitempty,dnonnegative"`
	CreditCeiling *decimal.Decimal `json:"creditCeiling" binding:"omitempty,dnonnegative"`
	CreatedAt     *time.Time       `json:"createdAt"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	Number        string                `json:"number"`
	Balance       decimal.Decimal       `json:"balance"`
	CreditLimit   decimal.Decimal       `json:"creditLimit"`
	CreditCeiling decimal.Decimal       `json:"creditCeiling"`
	CreatedAt     time.Time             `json:"createdAt"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Number:        acc.Number,
		Balance:       acc.Balance,
		CreditLimit:   acc.CreditLimit,
		CreditCeiling: acc.CreditCeiling,
		CreatedAt:     acc.CreatedAt,
		Transactions:  ToListTransactionResponse(acc.Transactions),
	}
}
