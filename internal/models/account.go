package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	Number        string          `db:"number"`
	Balance       decimal.Decimal `db:"balance"`
	CreditLimit   decimal.Decimal `db:"credit_limit"`
	CreditCeiling decimal.Decimal `db:"credit_ceiling"`
	CreatedAt     time.Time       `db:"created_at"`
}
