package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	"github.com/SscSPs/current_account_engine/internal/models"
	"github.com/SscSPs/current_account_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditColumns = `seq, audit_id, message, transaction_id, account_number, created_at`

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) FindAuditByAccount(ctx context.Context, accountNumber string) ([]domain.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_entries WHERE account_number = $1 ORDER BY seq`
	return r.list(ctx, query, accountNumber)
}

func (r *PgxAuditRepository) ListAudit(ctx context.Context) ([]domain.AuditEntry, error) {
	return r.list(ctx, `SELECT `+auditColumns+` FROM audit_entries ORDER BY seq`)
}

func (r *PgxAuditRepository) list(ctx context.Context, query string, args ...any) ([]domain.AuditEntry, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit entries: %w", err)
	}
	return mapping.ToDomainAuditEntries(entries), nil
}

func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	query := `
		INSERT INTO audit_entries (audit_id, message, transaction_id, account_number, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db(ctx).Exec(ctx, query, m.AuditID, m.Message, m.TransactionID, m.AccountNumber, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: audit entry %s", apperrors.ErrDuplicate, m.AuditID)
		}
		return fmt.Errorf("failed to save audit entry %s: %w", m.AuditID, err)
	}
	return nil
}

func (r *PgxAuditRepository) DeleteAuditByAccount(ctx context.Context, accountNumber string) error {
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM audit_entries WHERE account_number = $1`, accountNumber); err != nil {
		return fmt.Errorf("failed to delete audit entries for account %s: %w", accountNumber, err)
	}
	return nil
}

func (r *PgxAuditRepository) DeleteAllAudit(ctx context.Context) error {
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM audit_entries`); err != nil {
		return fmt.Errorf("failed to clear audit entries: %w", err)
	}
	return nil
}
