package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a current account within the core domain.
// CreditLimit is the unused portion of the credit line, never above CreditCeiling.
type Account struct {
	Number        string          `json:"number"`        // Primary Key, assigned by the caller
	Balance       decimal.Decimal `json:"balance"`       // Spendable funds, never negative
	CreditLimit   decimal.Decimal `json:"creditLimit"`   // Available credit headroom
	CreditCeiling decimal.Decimal `json:"creditCeiling"` // Maximum CreditLimit, fixed at creation
	CreatedAt     time.Time       `json:"createdAt"`
	Transactions  []Transaction   `json:"transactions"` // Owned by this account, creation order
}

// AvailableFunds is what a debit may consume: balance plus available credit.
func (a Account) AvailableFunds() decimal.Decimal {
	return a.Balance.Add(a.CreditLimit)
}

// CreditHeadroom is how much of the credit line is currently drawn.
func (a Account) CreditHeadroom() decimal.Decimal {
	return a.CreditCeiling.Sub(a.CreditLimit)
}
