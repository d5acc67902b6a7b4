package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/current_account_engine/internal/core/ports/services"
	"github.com/google/uuid"
)

type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
	now       func() time.Time
}

// AuditServiceOption is a functional option for configuring the audit service
type AuditServiceOption func(*auditService)

// WithAuditClock overrides time.Now for entry timestamps.
func WithAuditClock(now func() time.Time) AuditServiceOption {
	return func(s *auditService) {
		s.now = now
	}
}

// NewAuditService creates the audit log service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade, options ...AuditServiceOption) portssvc.AuditSvcFacade {
	svc := &auditService{
		auditRepo: auditRepo,
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Append(ctx context.Context, message string, txn *domain.Transaction) (*domain.AuditEntry, error) {
	if txn == nil {
		return nil, fmt.Errorf("%w: audit entry requires a transaction", apperrors.ErrValidation)
	}

	entry := domain.AuditEntry{
		AuditID:       uuid.NewString(),
		Message:       message,
		TransactionID: txn.TransactionID,
		AccountNumber: txn.OriginAccount,
		CreatedAt:     s.now(),
	}
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save audit entry", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogDebug(ctx, "Audit entry appended",
		slog.String("audit_id", entry.AuditID),
		slog.String("transaction_id", entry.TransactionID))
	return &entry, nil
}

func (s *auditService) ListByAccount(ctx context.Context, number string) ([]string, error) {
	entries, err := s.auditRepo.FindAuditByAccount(ctx, number)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries", slog.String("account_number", number))
		return nil, err
	}
	return messages(entries), nil
}

func (s *auditService) ListAll(ctx context.Context) ([]string, error) {
	entries, err := s.auditRepo.ListAudit(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries")
		return nil, err
	}
	return messages(entries), nil
}

func (s *auditService) Clear(ctx context.Context) error {
	if err := s.auditRepo.DeleteAllAudit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to clear audit log")
		return err
	}
	s.LogInfo(ctx, "Audit log cleared")
	return nil
}

func messages(entries []domain.AuditEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}
