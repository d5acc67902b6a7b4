package services

import (
	"context"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
)

// AuditSvcFacade defines operations on the append-only audit log.
type AuditSvcFacade interface {
	// Append records message against txn, which must not be nil.
	Append(ctx context.Context, message string, txn *domain.Transaction) (*domain.AuditEntry, error)

	// ListByAccount returns the messages for an origin account in storage order.
	ListByAccount(ctx context.Context, number string) ([]string, error)

	ListAll(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
