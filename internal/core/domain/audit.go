package domain

import "time"

// AuditEntry is an immutable, human-readable record of a completed operation.
type AuditEntry struct {
	AuditID       string    `json:"auditID"` // Primary Key (UUID)
	Message       string    `json:"message"`
	TransactionID string    `json:"transactionID"` // FK -> Transaction.TransactionID (Not Null)
	AccountNumber string    `json:"accountNumber"` // Origin account of the linked transaction
	CreatedAt     time.Time `json:"createdAt"`
}
