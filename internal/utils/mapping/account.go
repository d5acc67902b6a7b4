package mapping

import (
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/SscSPs/current_account_engine/internal/models"
)

// ToModelAccount converts a domain account to its row. Transactions are stored separately.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		Number:        d.Number,
		Balance:       d.Balance,
		CreditLimit:   d.CreditLimit,
		CreditCeiling: d.CreditCeiling,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainAccount converts an accounts row to a domain account without transactions.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		Number:        m.Number,
		Balance:       m.Balance,
		CreditLimit:   m.CreditLimit,
		CreditCeiling: m.CreditCeiling,
		CreatedAt:     m.CreatedAt,
	}
}
