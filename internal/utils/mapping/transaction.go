package mapping

import (
	"database/sql"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/SscSPs/current_account_engine/internal/models"
)

func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:      d.TransactionID,
		Kind:               string(d.Kind),
		Amount:             d.Amount,
		Date:               d.Date,
		Description:        d.Description,
		OriginAccount:      d.OriginAccount,
		DestinationAccount: sql.NullString{String: d.DestinationAccount, Valid: d.DestinationAccount != ""},
	}
}

func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		Kind:               domain.TransactionKind(m.Kind),
		Amount:             m.Amount,
		Date:               m.Date,
		Description:        m.Description,
		OriginAccount:      m.OriginAccount,
		DestinationAccount: m.DestinationAccount.String,
	}
}

func ToDomainTransactions(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainTransaction(m))
	}
	return out
}
