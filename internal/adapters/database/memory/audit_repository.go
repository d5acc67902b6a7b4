package memory

import (
	"context"
	"slices"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
)

type auditRepository struct {
	store *Store
}

func newAuditRepository(store *Store) portsrepo.AuditRepositoryFacade {
	return &auditRepository{store: store}
}

var _ portsrepo.AuditRepositoryFacade = (*auditRepository)(nil)

func (r *auditRepository) entries(ctx context.Context) []domain.AuditEntry {
	if u, ok := unitFromCtx(ctx); ok {
		return u.auditEntries()
	}
	return r.store.auditEntries()
}

func (r *auditRepository) FindAuditByAccount(ctx context.Context, accountNumber string) ([]domain.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.DeleteFunc(r.entries(ctx), func(e domain.AuditEntry) bool {
		return e.AccountNumber != accountNumber
	}), nil
}

func (r *auditRepository) ListAudit(ctx context.Context) ([]domain.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.entries(ctx), nil
}

func (r *auditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	return r.store.write(ctx, func(u *unitOfWork) error {
		u.appendAudit(entry)
		return nil
	})
}

func (r *auditRepository) DeleteAuditByAccount(ctx context.Context, accountNumber string) error {
	return r.store.write(ctx, func(u *unitOfWork) error {
		u.deleteAudit(accountNumber)
		return nil
	})
}

func (r *auditRepository) DeleteAllAudit(ctx context.Context) error {
	return r.store.write(ctx, func(u *unitOfWork) error {
		u.clearAudit()
		return nil
	})
}
