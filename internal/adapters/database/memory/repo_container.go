package memory

import (
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider exposes store through the repository ports. The store is also the
// transaction manager.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newAccountRepository(store),
		TransactionRepo: newTransactionRepository(store),
		AuditRepo:       newAuditRepository(store),
		TxManager:       store,
	}
}
