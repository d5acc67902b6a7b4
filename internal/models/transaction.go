package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Seq preserves creation order.
type Transaction struct {
	Seq                int64           `db:"seq"`
	TransactionID      string          `db:"transaction_id"`
	Kind               string          `db:"kind"`
	Amount             decimal.Decimal `db:"amount"`
	Date               time.Time       `db:"date"`
	Description        string          `db:"description"`
	OriginAccount      string          `db:"origin_account"`
	DestinationAccount sql.NullString  `db:"destination_account"` // Transfers only
}
