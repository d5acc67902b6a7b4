package models

import "time"

// AuditEntry is a row of the audit_entries table.
type AuditEntry struct {
	Seq           int64     `db:"seq"`
	AuditID       string    `db:"audit_id"`
	Message       string    `db:"message"`
	TransactionID string    `db:"transaction_id"`
	AccountNumber string    `db:"account_number"`
	CreatedAt     time.Time `db:"created_at"`
}
