package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/current_account_engine/internal/core/ports/services"
	"github.com/SscSPs/current_account_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// DefaultCreditCeiling is used when neither the request nor the configuration sets one.
var DefaultCreditCeiling = decimal.NewFromInt(1000)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	auditRepo       portsrepo.AuditWriter
	txManager       portsrepo.TransactionManager
	locker          *AccountLocker
	creditCeiling   decimal.Decimal
	now             func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithDefaultCreditCeiling sets the ceiling applied when a create request omits it.
func WithDefaultCreditCeiling(ceiling decimal.Decimal) AccountServiceOption {
	return func(s *accountService) {
		s.creditCeiling = ceiling
	}
}

// WithAccountClock overrides time.Now for creation timestamps.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// WithAccountLocker shares a locker with the transaction engine.
func WithAccountLocker(locker *AccountLocker) AccountServiceOption {
	return func(s *accountService) {
		s.locker = locker
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repos portsrepo.RepositoryProvider, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:     repos.AccountRepo,
		transactionRepo: repos.TransactionRepo,
		auditRepo:       repos.AuditRepo,
		txManager:       repos.TxManager,
		creditCeiling:   DefaultCreditCeiling,
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

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*domain.Account, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: account record is required", apperrors.ErrValidation)
	}
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}

	account := domain.Account{
		Number:        number,
		Balance:       decimal.Zero,
		CreditLimit:   decimal.Zero,
		CreditCeiling: s.creditCeiling,
		CreatedAt:     s.now(),
		Transactions:  []domain.Transaction{},
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}
	if req.CreditLimit != nil {
		account.CreditLimit = *req.CreditLimit
	}
	if req.CreditCeiling != nil {
		account.CreditCeiling = *req.CreditCeiling
	}
	if req.CreatedAt != nil {
		account.CreatedAt = *req.CreatedAt
	}
	if err := validateNewAccount(account); err != nil {
		s.LogWarn(ctx, err, "Rejected account record", slog.String("account_number", number))
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, number)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := s.accountRepo.FindAccountByNumber(ctx, number); err == nil {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, number)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account existence", slog.String("account_number", number))
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_number", number))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_number", account.Number),
		slog.String("credit_ceiling", account.CreditCeiling.String()))
	return &account, nil
}

func validateNewAccount(acc domain.Account) error {
	switch {
	case acc.Balance.IsNegative():
		return fmt.Errorf("%w: balance cannot be negative", apperrors.ErrValidation)
	case acc.CreditLimit.IsNegative():
		return fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
	case acc.CreditCeiling.IsNegative():
		return fmt.Errorf("%w: credit ceiling cannot be negative", apperrors.ErrValidation)
	case acc.CreditLimit.GreaterThan(acc.CreditCeiling):
		return fmt.Errorf("%w: credit limit %s exceeds ceiling %s", apperrors.ErrValidation, acc.CreditLimit, acc.CreditCeiling)
	}
	return nil
}

// FindAccount retrieves an account without loading its transactions.
func (s *accountService) FindAccount(ctx context.Context, number string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, number)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_number", number))
		}
		return nil, err
	}
	return account, nil
}

// GetAccount holds the account lock while reading so the balance and the returned
// history reflect the same set of completed operations.
func (s *accountService) GetAccount(ctx context.Context, number string) (*domain.Account, error) {
	unlock, err := s.locker.Lock(ctx, number)
	if err != nil {
		return nil, err
	}
	defer unlock()

	account, err := s.FindAccount(ctx, number)
	if err != nil {
		return nil, err
	}

	txns, err := s.transactionRepo.FindTransactionsByOrigin(ctx, number)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account transactions", slog.String("account_number", number))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	account.Transactions = txns

	s.LogDebug(ctx, "Account retrieved successfully",
		slog.String("account_number", number),
		slog.Int("transactions", len(txns)))
	return account, nil
}

func (s *accountService) SetBalance(ctx context.Context, number string, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance cannot be negative", apperrors.ErrValidation)
	}
	if err := s.accountRepo.UpdateBalance(ctx, number, balance); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update balance", slog.String("account_number", number))
		}
		return err
	}
	return nil
}

func (s *accountService) SetCreditLimit(ctx context.Context, number string, creditLimit decimal.Decimal) error {
	if creditLimit.IsNegative() {
		return fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
	}
	account, err := s.FindAccount(ctx, number)
	if err != nil {
		return err
	}
	if creditLimit.GreaterThan(account.CreditCeiling) {
		return fmt.Errorf("%w: credit limit %s exceeds ceiling %s", apperrors.ErrValidation, creditLimit, account.CreditCeiling)
	}
	if err := s.accountRepo.UpdateCreditLimit(ctx, number, creditLimit); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update credit limit", slog.String("account_number", number))
		}
		return err
	}
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, number string) error {
	unlock, err := s.locker.Lock(ctx, number)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.FindAccount(ctx, number); err != nil {
			return err
		}
		if err := s.auditRepo.DeleteAuditByAccount(ctx, number); err != nil {
			return err
		}
		if err := s.transactionRepo.DeleteTransactionsByOrigin(ctx, number); err != nil {
			return err
		}
		return s.accountRepo.DeleteAccount(ctx, number)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_number", number))
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully", slog.String("account_number", number))
	return nil
}
