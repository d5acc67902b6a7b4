package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type accountRepository struct {
	store *Store
}

func newAccountRepository(store *Store) portsrepo.AccountRepositoryFacade {
	return &accountRepository{store: store}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		acc domain.Account
		ok  bool
	)
	if u, inUnit := unitFromCtx(ctx); inUnit {
		acc, ok = u.lookup(number)
	} else {
		acc, ok = r.store.account(number)
	}
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.store.write(ctx, func(u *unitOfWork) error {
		if _, exists := u.lookup(account.Number); exists {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.Number)
		}
		u.createAccount(account)
		return nil
	})
}

func (r *accountRepository) UpdateBalance(ctx context.Context, number string, balance decimal.Decimal) error {
	return r.update(ctx, number, func(acc *domain.Account) { acc.Balance = balance })
}

func (r *accountRepository) UpdateCreditLimit(ctx context.Context, number string, creditLimit decimal.Decimal) error {
	return r.update(ctx, number, func(acc *domain.Account) { acc.CreditLimit = creditLimit })
}

func (r *accountRepository) update(ctx context.Context, number string, mutate func(*domain.Account)) error {
	return r.store.write(ctx, func(u *unitOfWork) error {
		acc, ok := u.lookup(number)
		if !ok {
			return apperrors.ErrNotFound
		}
		mutate(&acc)
		u.putAccount(acc)
		return nil
	})
}

func (r *accountRepository) DeleteAccount(ctx context.Context, number string) error {
	return r.store.write(ctx, func(u *unitOfWork) error {
		if _, ok := u.lookup(number); !ok {
			return apperrors.ErrNotFound
		}
		u.deleteAccount(number)
		return nil
	})
}
