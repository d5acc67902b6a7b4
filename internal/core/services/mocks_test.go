package services_test

import (
	"context"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, number string, balance decimal.Decimal) error {
	args := m.Called(ctx, number, balance)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateCreditLimit(ctx context.Context, number string, creditLimit decimal.Decimal) error {
	args := m.Called(ctx, number, creditLimit)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionsByOrigin(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionsByOrigin(ctx context.Context, accountNumber string) error {
	args := m.Called(ctx, accountNumber)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) FindAuditByAccount(ctx context.Context, accountNumber string) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

func (m *MockAuditRepository) ListAudit(ctx context.Context) ([]domain.AuditEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

func (m *MockAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) DeleteAuditByAccount(ctx context.Context, accountNumber string) error {
	args := m.Called(ctx, accountNumber)
	return args.Error(0)
}

func (m *MockAuditRepository) DeleteAllAudit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// passthroughTxManager runs fn directly; the mocks see every call in order.
type passthroughTxManager struct{}

func (passthroughTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Deposit(ctx context.Context, number string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, number, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, number, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Transfer(ctx context.Context, origin string, destination string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, origin, destination, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
