package memory

import (
	"context"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
)

type transactionRepository struct {
	store *Store
}

func newTransactionRepository(store *Store) portsrepo.TransactionRepositoryFacade {
	return &transactionRepository{store: store}
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func (r *transactionRepository) FindTransactionsByOrigin(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if u, ok := unitFromCtx(ctx); ok {
		return u.transactionsByOrigin(accountNumber), nil
	}
	return r.store.transactionsByOrigin(accountNumber), nil
}

func (r *transactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.store.write(ctx, func(u *unitOfWork) error {
		u.appendTransaction(txn)
		return nil
	})
}

func (r *transactionRepository) DeleteTransactionsByOrigin(ctx context.Context, accountNumber string) error {
	return r.store.write(ctx, func(u *unitOfWork) error {
		u.deleteTransactions(accountNumber)
		return nil
	})
}
