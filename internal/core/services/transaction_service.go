package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/current_account_engine/internal/core/ports/services"
	"github.com/SscSPs/current_account_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const descriptionDateLayout = "2006-01-02"

// transactionService implements TransactionSvcFacade. Every operation runs under the
// account locks of the accounts it touches and inside a single unit of work.
type transactionService struct {
	BaseService
	accountSvc      portssvc.AccountSvcFacade
	auditSvc        portssvc.AuditSvcFacade
	transactionRepo portsrepo.TransactionWriter
	txManager       portsrepo.TransactionManager
	locker          *AccountLocker
	fees            domain.FeeSchedule
	now             func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithFeeSchedule overrides the default fee rates.
func WithFeeSchedule(fees domain.FeeSchedule) TransactionServiceOption {
	return func(s *transactionService) {
		s.fees = fees
	}
}

// WithClock overrides time.Now for transaction dates.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// WithTransactionLocker shares a locker with the account service.
func WithTransactionLocker(locker *AccountLocker) TransactionServiceOption {
	return func(s *transactionService) {
		s.locker = locker
	}
}

// NewTransactionService creates the transaction engine.
func NewTransactionService(
	repos portsrepo.RepositoryProvider,
	accountSvc portssvc.AccountSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		accountSvc:      accountSvc,
		auditSvc:        auditSvc,
		transactionRepo: repos.TransactionRepo,
		txManager:       repos.TxManager,
		fees:            domain.DefaultFeeSchedule(),
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.locker == nil {
		svc.locker = NewAccountLocker()
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) Deposit(ctx context.Context, number string, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	var txn *domain.Transaction
	err := s.locked(ctx, []string{number}, func(ctx context.Context) error {
		acc, err := s.findAccount(ctx, "account", number)
		if err != nil {
			return err
		}

		split := accounting.SplitDeposit(*acc, amount)
		newCredit := acc.CreditLimit.Add(split.ToCredit)
		newBalance := acc.Balance.Add(split.ToBalance)
		if split.ToCredit.IsPositive() {
			if err := s.accountSvc.SetCreditLimit(ctx, number, newCredit); err != nil {
				return err
			}
		}
		if split.ToBalance.IsPositive() {
			if err := s.accountSvc.SetBalance(ctx, number, newBalance); err != nil {
				return err
			}
		}

		now := s.now()
		description := fmt.Sprintf("Deposit to account %s on %s. Credit restored: %s. Balance: %s. Available credit: %s",
			number, now.Format(descriptionDateLayout),
			accounting.FormatAmount(split.ToCredit),
			accounting.FormatAmount(newBalance),
			accounting.FormatAmount(newCredit))
		txn, err = s.record(ctx, domain.Transaction{
			Kind:          domain.Deposit,
			Amount:        amount,
			Date:          now,
			Description:   description,
			OriginAccount: number,
		})
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Deposit failed", slog.String("account_number", number), slog.String("amount", amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Deposit completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_number", number),
		slog.String("amount", amount.String()))
	return txn, nil
}

func (s *transactionService) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}

	var txn *domain.Transaction
	err := s.locked(ctx, []string{number}, func(ctx context.Context) error {
		acc, err := s.findAccount(ctx, "account", number)
		if err != nil {
			return err
		}

		fee := accounting.Fee(amount, s.fees.WithdrawalRate)
		if err := s.debit(ctx, acc, amount.Add(fee)); err != nil {
			return err
		}

		now := s.now()
		description := fmt.Sprintf("Withdrawal of %s from account %s on %s. Fee: %s. Balance: %s. Available credit: %s",
			accounting.FormatAmount(amount), number, now.Format(descriptionDateLayout),
			accounting.FormatAmount(fee),
			accounting.FormatAmount(acc.Balance),
			accounting.FormatAmount(acc.CreditLimit))
		txn, err = s.record(ctx, domain.Transaction{
			Kind:          domain.Withdrawal,
			Amount:        amount,
			Date:          now,
			Description:   description,
			OriginAccount: number,
		})
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Withdrawal failed", slog.String("account_number", number), slog.String("amount", amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_number", number),
		slog.String("amount", amount.String()))
	return txn, nil
}

func (s *transactionService) Transfer(ctx context.Context, origin string, destination string, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if origin == destination {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	var txn *domain.Transaction
	err := s.locked(ctx, []string{origin, destination}, func(ctx context.Context) error {
		from, err := s.findAccount(ctx, "origin account", origin)
		if err != nil {
			return err
		}
		to, err := s.findAccount(ctx, "destination account", destination)
		if err != nil {
			return err
		}

		fee := accounting.Fee(amount, accounting.TransferFeeRate(*from, s.fees))
		if err := s.debit(ctx, from, amount.Add(fee)); err != nil {
			return err
		}
		to.Balance = to.Balance.Add(amount)
		if err := s.accountSvc.SetBalance(ctx, destination, to.Balance); err != nil {
			return err
		}

		now := s.now()
		description := fmt.Sprintf("Transfer of %s from account %s to account %s on %s. Fee: %s. Balance: %s. Available credit: %s",
			accounting.FormatAmount(amount), origin, destination, now.Format(descriptionDateLayout),
			accounting.FormatAmount(fee),
			accounting.FormatAmount(from.Balance),
			accounting.FormatAmount(from.CreditLimit))
		txn, err = s.record(ctx, domain.Transaction{
			Kind:               domain.Transfer,
			Amount:             amount,
			Date:               now,
			Description:        description,
			OriginAccount:      origin,
			DestinationAccount: destination,
		})
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Transfer failed",
			slog.String("origin_account", origin),
			slog.String("destination_account", destination),
			slog.String("amount", amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("origin_account", origin),
		slog.String("destination_account", destination),
		slog.String("amount", amount.String()))
	return txn, nil
}

// locked runs fn inside one unit of work while holding the locks of numbers.
func (s *transactionService) locked(ctx context.Context, numbers []string, fn func(ctx context.Context) error) error {
	unlock, err := s.locker.Lock(ctx, numbers...)
	if err != nil {
		return err
	}
	defer unlock()
	return s.txManager.WithinTransaction(ctx, fn)
}

func (s *transactionService) findAccount(ctx context.Context, role string, number string) (*domain.Account, error) {
	acc, err := s.accountSvc.FindAccount(ctx, number)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%s %s: %w", role, number, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return acc, nil
}

// debit applies total to acc and persists whichever fields changed. acc is updated in place.
func (s *transactionService) debit(ctx context.Context, acc *domain.Account, total decimal.Decimal) error {
	balance, credit, err := accounting.Debit(*acc, total)
	if err != nil {
		return fmt.Errorf("account %s: %w", acc.Number, err)
	}
	if !balance.Equal(acc.Balance) {
		if err := s.accountSvc.SetBalance(ctx, acc.Number, balance); err != nil {
			return err
		}
	}
	if !credit.Equal(acc.CreditLimit) {
		if err := s.accountSvc.SetCreditLimit(ctx, acc.Number, credit); err != nil {
			return err
		}
	}
	acc.Balance, acc.CreditLimit = balance, credit
	return nil
}

// record stores txn and its audit entry. The audit message is the transaction description.
func (s *transactionService) record(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	txn.TransactionID = uuid.NewString()
	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}
	if _, err := s.auditSvc.Append(ctx, txn.Description, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *transactionService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInsufficientFunds):
		s.LogWarn(ctx, err, msg, keyvals...)
	default:
		s.LogError(ctx, err, msg, keyvals...)
	}
}
