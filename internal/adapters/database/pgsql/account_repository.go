package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	"github.com/SscSPs/current_account_engine/internal/models"
	"github.com/SscSPs/current_account_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountByNumber retrieves an account. Inside a transaction the row is locked until commit.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `
		SELECT number, balance, credit_limit, credit_ceiling, created_at
		FROM accounts
		WHERE number = $1`
	if _, ok := txFromCtx(ctx); ok {
		query += ` FOR UPDATE`
	}

	var m models.Account
	err := r.db(ctx).QueryRow(ctx, query, number).Scan(
		&m.Number,
		&m.Balance,
		&m.CreditLimit,
		&m.CreditCeiling,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", number, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (number, balance, credit_limit, credit_ceiling, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db(ctx).Exec(ctx, query, m.Number, m.Balance, m.CreditLimit, m.CreditCeiling, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, m.Number)
		}
		return fmt.Errorf("failed to save account %s: %w", m.Number, err)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateBalance(ctx context.Context, number string, balance decimal.Decimal) error {
	return r.updateColumn(ctx, `UPDATE accounts SET balance = $2 WHERE number = $1`, number, balance)
}

func (r *PgxAccountRepository) UpdateCreditLimit(ctx context.Context, number string, creditLimit decimal.Decimal) error {
	return r.updateColumn(ctx, `UPDATE accounts SET credit_limit = $2 WHERE number = $1`, number, creditLimit)
}

func (r *PgxAccountRepository) updateColumn(ctx context.Context, query string, number string, value decimal.Decimal) error {
	tag, err := r.db(ctx).Exec(ctx, query, number, value)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", number, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, number string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM accounts WHERE number = $1`, number)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", number, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
