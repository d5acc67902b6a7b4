package repositories

import (
	"context"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
)

// AuditReader defines read operations for audit entries
type AuditReader interface {
	// FindAuditByAccount returns entries whose transaction originated from accountNumber, in storage order.
	FindAuditByAccount(ctx context.Context, accountNumber string) ([]domain.AuditEntry, error)

	// ListAudit returns every entry.
	ListAudit(ctx context.Context) ([]domain.AuditEntry, error)
}

// AuditWriter defines write operations for audit entries
type AuditWriter interface {
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error
	DeleteAuditByAccount(ctx context.Context, accountNumber string) error
	DeleteAllAudit(ctx context.Context) error
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
