package pgsql

import (
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		AuditRepo:       newPgxAuditRepository(dbPool),
		TxManager:       newTxManager(dbPool),
	}
}
