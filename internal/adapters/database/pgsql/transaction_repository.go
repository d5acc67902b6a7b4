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

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) FindTransactionsByOrigin(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	query := `
		SELECT seq, transaction_id, kind, amount, date, description, origin_account, destination_account
		FROM transactions
		WHERE origin_account = $1
		ORDER BY seq`

	rows, err := r.db(ctx).Query(ctx, query, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountNumber, err)
	}
	txns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions for account %s: %w", accountNumber, err)
	}
	return mapping.ToDomainTransactions(txns), nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, kind, amount, date, description, origin_account, destination_account)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db(ctx).Exec(ctx, query,
		m.TransactionID,
		m.Kind,
		m.Amount,
		m.Date,
		m.Description,
		m.OriginAccount,
		m.DestinationAccount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransactionsByOrigin(ctx context.Context, accountNumber string) error {
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM transactions WHERE origin_account = $1`, accountNumber); err != nil {
		return fmt.Errorf("failed to delete transactions for account %s: %w", accountNumber, err)
	}
	return nil
}
