package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	"github.com/SscSPs/current_account_engine/pkg/wal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *Store
	repos portsrepo.RepositoryProvider
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	store, err := NewStore()
	s.Require().NoError(err)
	s.store = store
	s.repos = NewRepositoryProvider(store)
	s.ctx = context.Background()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func newAccount(number string, balance int64) domain.Account {
	return domain.Account{
		Number:        number,
		Balance:       decimal.NewFromInt(balance),
		CreditLimit:   decimal.Zero,
		CreditCeiling: decimal.NewFromInt(1000),
		CreatedAt:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *StoreTestSuite) TestSaveAndFindAccount() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, newAccount("001", 100)))

	acc, err := s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
	s.Require().NoError(err)
	s.Equal("001", acc.Number)
	s.True(acc.Balance.Equal(decimal.NewFromInt(100)))

	_, err = s.repos.AccountRepo.FindAccountByNumber(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveDuplicateAccount() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, newAccount("001", 100)))
	err := s.repos.AccountRepo.SaveAccount(s.ctx, newAccount("001", 5))
	s.ErrorIs(err, apperrors.ErrDuplicate)

	acc, err := s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
	s.Require().NoError(err)
	s.True(acc.Balance.Equal(decimal.NewFromInt(100)))
}

func (s *StoreTestSuite) TestUpdatesRequireExistingAccount() {
	s.ErrorIs(s.repos.AccountRepo.UpdateBalance(s.ctx, "missing", decimal.NewFromInt(1)), apperrors.ErrNotFound)
	s.ErrorIs(s.repos.AccountRepo.UpdateCreditLimit(s.ctx, "missing", decimal.NewFromInt(1)), apperrors.ErrNotFound)
	s.ErrorIs(s.repos.AccountRepo.DeleteAccount(s.ctx, "missing"), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestUnitOfWorkReadsOwnWrites() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, newAccount("001", 100)))

	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.repos.AccountRepo.UpdateBalance(ctx, "001", decimal.NewFromInt(40)))

		inside, err := s.repos.AccountRepo.FindAccountByNumber(ctx, "001")
		s.Require().NoError(err)
		s.True(inside.Balance.Equal(decimal.NewFromInt(40)))

		outside, err := s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
		s.Require().NoError(err)
		s.True(outside.Balance.Equal(decimal.NewFromInt(100)), "uncommitted write must not be visible")
		return nil
	})
	s.Require().NoError(err)

	acc, err := s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
	s.Require().NoError(err)
	s.True(acc.Balance.Equal(decimal.NewFromInt(40)))
}

func (s *StoreTestSuite) TestUnitOfWorkDiscardedOnError() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, newAccount("001", 100)))
	boom := errors.New("boom")

	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.repos.AccountRepo.UpdateBalance(ctx, "001", decimal.Zero))
		s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(ctx, domain.Transaction{TransactionID: "t1", OriginAccount: "001"}))
		return boom
	})
	s.ErrorIs(err, boom)

	acc, err := s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
	s.Require().NoError(err)
	s.True(acc.Balance.Equal(decimal.NewFromInt(100)))
	txns, err := s.repos.TransactionRepo.FindTransactionsByOrigin(s.ctx, "001")
	s.Require().NoError(err)
	s.Empty(txns)
}

func (s *StoreTestSuite) TestUnitOfWorkDiscardedWhenContextDone() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, newAccount("001", 100)))
	ctx, cancel := context.WithCancel(s.ctx)

	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context) error {
		s.Require().NoError(s.repos.AccountRepo.UpdateBalance(ctx, "001", decimal.Zero))
		cancel()
		return nil
	})
	s.ErrorIs(err, context.Canceled)

	acc, err := s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
	s.Require().NoError(err)
	s.True(acc.Balance.Equal(decimal.NewFromInt(100)))
}

func (s *StoreTestSuite) TestCommitRejectsConcurrentCreate() {
	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.repos.AccountRepo.SaveAccount(ctx, newAccount("001", 1)))
		// Another writer commits the same number before this unit does.
		s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, newAccount("001", 2)))
		return nil
	})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	acc, err := s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
	s.Require().NoError(err)
	s.True(acc.Balance.Equal(decimal.NewFromInt(2)))
}

func (s *StoreTestSuite) TestTransactionsByOriginKeepOrder() {
	for _, id := range []string{"t1", "t2", "t3"} {
		s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, domain.Transaction{TransactionID: id, OriginAccount: "001"}))
	}
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, domain.Transaction{TransactionID: "x", OriginAccount: "002"}))

	txns, err := s.repos.TransactionRepo.FindTransactionsByOrigin(s.ctx, "001")
	s.Require().NoError(err)
	s.Require().Len(txns, 3)
	s.Equal("t1", txns[0].TransactionID)
	s.Equal("t3", txns[2].TransactionID)
}

func (s *StoreTestSuite) TestDuplicateTransactionID() {
	txn := domain.Transaction{TransactionID: "t1", OriginAccount: "001"}
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, txn))
	s.ErrorIs(s.repos.TransactionRepo.SaveTransaction(s.ctx, txn), apperrors.ErrDuplicate)
}

func (s *StoreTestSuite) TestAuditFilteringAndClear() {
	s.Require().NoError(s.repos.AuditRepo.SaveAuditEntry(s.ctx, domain.AuditEntry{AuditID: "a1", Message: "m1", AccountNumber: "001"}))
	s.Require().NoError(s.repos.AuditRepo.SaveAuditEntry(s.ctx, domain.AuditEntry{AuditID: "a2", Message: "m2", AccountNumber: "002"}))
	s.Require().NoError(s.repos.AuditRepo.SaveAuditEntry(s.ctx, domain.AuditEntry{AuditID: "a3", Message: "m3", AccountNumber: "001"}))

	entries, err := s.repos.AuditRepo.FindAuditByAccount(s.ctx, "001")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("m1", entries[0].Message)
	s.Equal("m3", entries[1].Message)

	s.Require().NoError(s.repos.AuditRepo.DeleteAuditByAccount(s.ctx, "001"))
	all, err := s.repos.AuditRepo.ListAudit(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal("a2", all[0].AuditID)

	s.Require().NoError(s.repos.AuditRepo.DeleteAllAudit(s.ctx))
	all, err = s.repos.AuditRepo.ListAudit(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *StoreTestSuite) TestCascadeInsideUnit() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, newAccount("001", 1)))
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, domain.Transaction{TransactionID: "t1", OriginAccount: "001"}))
	s.Require().NoError(s.repos.AuditRepo.SaveAuditEntry(s.ctx, domain.AuditEntry{AuditID: "a1", TransactionID: "t1", AccountNumber: "001"}))

	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.repos.AuditRepo.DeleteAuditByAccount(ctx, "001"))
		s.Require().NoError(s.repos.TransactionRepo.DeleteTransactionsByOrigin(ctx, "001"))
		s.Require().NoError(s.repos.AccountRepo.DeleteAccount(ctx, "001"))

		_, err := s.repos.AccountRepo.FindAccountByNumber(ctx, "001")
		s.ErrorIs(err, apperrors.ErrNotFound)
		txns, err := s.repos.TransactionRepo.FindTransactionsByOrigin(ctx, "001")
		s.Require().NoError(err)
		s.Empty(txns)
		return nil
	})
	s.Require().NoError(err)

	_, err = s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
	s.ErrorIs(err, apperrors.ErrNotFound)
	audits, err := s.repos.AuditRepo.ListAudit(s.ctx)
	s.Require().NoError(err)
	s.Empty(audits)

	// The transaction id is free again once its owner is gone.
	s.NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, domain.Transaction{TransactionID: "t1", OriginAccount: "002"}))
}

func TestStoreReplaysWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.wal")
	ctx := context.Background()

	log, err := wal.Open(path)
	require.NoError(t, err)
	store, err := NewStore(WithWAL(log))
	require.NoError(t, err)
	repos := NewRepositoryProvider(store)

	require.NoError(t, repos.AccountRepo.SaveAccount(ctx, newAccount("001", 100)))
	require.NoError(t, repos.AccountRepo.SaveAccount(ctx, newAccount("002", 0)))
	err = repos.TxManager.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repos.AccountRepo.UpdateBalance(ctx, "001", decimal.RequireFromString("59.5")))
		require.NoError(t, repos.AccountRepo.UpdateBalance(ctx, "002", decimal.RequireFromString("40")))
		require.NoError(t, repos.TransactionRepo.SaveTransaction(ctx, domain.Transaction{
			TransactionID: "t1", Kind: domain.Transfer, Amount: decimal.NewFromInt(40),
			OriginAccount: "001", DestinationAccount: "002",
		}))
		return repos.AuditRepo.SaveAuditEntry(ctx, domain.AuditEntry{AuditID: "a1", Message: "moved", TransactionID: "t1", AccountNumber: "001"})
	})
	require.NoError(t, err)
	require.NoError(t, repos.AccountRepo.DeleteAccount(ctx, "002"))
	require.NoError(t, log.Close())

	log, err = wal.Open(path)
	require.NoError(t, err)
	defer log.Close()
	restored, err := NewStore(WithWAL(log))
	require.NoError(t, err)
	restoredRepos := NewRepositoryProvider(restored)

	acc, err := restoredRepos.AccountRepo.FindAccountByNumber(ctx, "001")
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("59.5")))
	_, err = restoredRepos.AccountRepo.FindAccountByNumber(ctx, "002")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	txns, err := restoredRepos.TransactionRepo.FindTransactionsByOrigin(ctx, "001")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "002", txns[0].DestinationAccount)
	assert.True(t, txns[0].Amount.Equal(decimal.NewFromInt(40)))

	messages, err := restoredRepos.AuditRepo.FindAuditByAccount(ctx, "001")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "moved", messages[0].Message)
	assert.Equal(t, uint64(4), restored.seq)
}
