package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the operation that produced a transaction.
type TransactionKind string

const (
	Deposit    TransactionKind = "DEPOSIT"
	Withdrawal TransactionKind = "WITHDRAWAL"
	Transfer   TransactionKind = "TRANSFER"
)

// Transaction records one successful mutating operation. It is owned by the origin account.
type Transaction struct {
	TransactionID      string          `json:"transactionID"` // Primary Key (UUID)
	Kind               TransactionKind `json:"kind"`
	Amount             decimal.Decimal `json:"amount"` // Requested amount, fees excluded
	Date               time.Time       `json:"date"`
	Description        string          `json:"description"`
	OriginAccount      string          `json:"originAccount"`                // FK -> Account.Number
	DestinationAccount string          `json:"destinationAccount,omitempty"` // Transfers only
}
