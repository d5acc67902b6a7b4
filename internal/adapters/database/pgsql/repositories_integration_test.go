//go:build integration

package pgsql

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	"github.com/SscSPs/current_account_engine/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PgsqlRepositorySuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
	ctx       context.Context
}

func TestPgsqlRepositorySuite(t *testing.T) {
	suite.Run(t, new(PgsqlRepositorySuite))
}

func (s *PgsqlRepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("accounts"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(dsn, "file://../../../../migrations", slog.Default()))

	s.pool, err = database.NewPgxPool(s.ctx, dsn)
	s.Require().NoError(err)
	s.repos = NewRepositoryProvider(s.pool)
}

func (s *PgsqlRepositorySuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PgsqlRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE audit_entries, transactions, accounts`)
	s.Require().NoError(err)
}

func (s *PgsqlRepositorySuite) account(number string, balance string) domain.Account {
	return domain.Account{
		Number:        number,
		Balance:       decimal.RequireFromString(balance),
		CreditLimit:   decimal.Zero,
		CreditCeiling: decimal.NewFromInt(1000),
		CreatedAt:     time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC),
	}
}

func (s *PgsqlRepositorySuite) TestAccountLifecycle() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, s.account("001", "10.25")))
	s.ErrorIs(s.repos.AccountRepo.SaveAccount(s.ctx, s.account("001", "1")), apperrors.ErrDuplicate)

	s.Require().NoError(s.repos.AccountRepo.UpdateBalance(s.ctx, "001", decimal.RequireFromString("898.99")))
	s.Require().NoError(s.repos.AccountRepo.UpdateCreditLimit(s.ctx, "001", decimal.RequireFromString("489")))

	acc, err := s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
	s.Require().NoError(err)
	s.True(acc.Balance.Equal(decimal.RequireFromString("898.99")))
	s.True(acc.CreditLimit.Equal(decimal.RequireFromString("489")))
	s.True(acc.CreatedAt.Equal(time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)))

	s.ErrorIs(s.repos.AccountRepo.UpdateBalance(s.ctx, "404", decimal.Zero), apperrors.ErrNotFound)
	s.Require().NoError(s.repos.AccountRepo.DeleteAccount(s.ctx, "001"))
	_, err = s.repos.AccountRepo.FindAccountByNumber(s.ctx, "001")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(s.repos.AccountRepo.DeleteAccount(s.ctx, "001"), apperrors.ErrNotFound)
}

func (s *PgsqlRepositorySuite) TestRollbackDiscardsWrites() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, s.account("001", "100")))
	boom := errors.New("boom")

	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.repos.AccountRepo.UpdateBalance(ctx, "001", decimal.Zero))
		s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(ctx, domain.Transaction{
			TransactionID: "t1", Kind: domain.Withdrawal, Amount: decimal.NewFromInt(99),
			Date: time.Now(), Description: "w", OriginAccount: "001",
		}))
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

func (s *PgsqlRepositorySuite) TestTransactionsAndAuditKeepOrder() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, s.account("001", "0")))
	for _, id := range []string{"t1", "t2", "t3"} {
		txn := domain.Transaction{
			TransactionID: id, Kind: domain.Transfer, Amount: decimal.NewFromInt(1),
			Date: time.Now(), Description: "d-" + id, OriginAccount: "001", DestinationAccount: "002",
		}
		s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, txn))
		s.Require().NoError(s.repos.AuditRepo.SaveAuditEntry(s.ctx, domain.AuditEntry{
			AuditID: "a-" + id, Message: "d-" + id, TransactionID: id, AccountNumber: "001", CreatedAt: time.Now(),
		}))
	}

	txns, err := s.repos.TransactionRepo.FindTransactionsByOrigin(s.ctx, "001")
	s.Require().NoError(err)
	s.Require().Len(txns, 3)
	s.Equal("t1", txns[0].TransactionID)
	s.Equal("002", txns[0].DestinationAccount)
	s.Equal("t3", txns[2].TransactionID)

	entries, err := s.repos.AuditRepo.FindAuditByAccount(s.ctx, "001")
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("d-t2", entries[1].Message)

	s.Require().NoError(s.repos.AuditRepo.DeleteAllAudit(s.ctx))
	all, err := s.repos.AuditRepo.ListAudit(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *PgsqlRepositorySuite) TestCascadeDeleteInOneTransaction() {
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, s.account("001", "0")))
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, domain.Transaction{
		TransactionID: "t1", Kind: domain.Deposit, Amount: decimal.NewFromInt(5),
		Date: time.Now(), Description: "dep", OriginAccount: "001",
	}))
	s.Require().NoError(s.repos.AuditRepo.SaveAuditEntry(s.ctx, domain.AuditEntry{
		AuditID: "a1", Message: "dep", TransactionID: "t1", AccountNumber: "001", CreatedAt: time.Now(),
	}))

	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.repos.AuditRepo.DeleteAuditByAccount(ctx, "001"); err != nil {
			return err
		}
		if err := s.repos.TransactionRepo.DeleteTransactionsByOrigin(ctx, "001"); err != nil {
			return err
		}
		return s.repos.AccountRepo.DeleteAccount(ctx, "001")
	})
	s.Require().NoError(err)

	var count int
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT count(*) FROM transactions`).Scan(&count))
	s.Zero(count)
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT count(*) FROM audit_entries`).Scan(&count))
	s.Zero(count)
}
