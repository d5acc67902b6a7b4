package mapping

import (
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/SscSPs/current_account_engine/internal/models"
)

func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		AuditID:       d.AuditID,
		Message:       d.Message,
		TransactionID: d.TransactionID,
		AccountNumber: d.AccountNumber,
		CreatedAt:     d.CreatedAt,
	}
}

func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:       m.AuditID,
		Message:       m.Message,
		TransactionID: m.TransactionID,
		AccountNumber: m.AccountNumber,
		CreatedAt:     m.CreatedAt,
	}
}

func ToDomainAuditEntries(ms []models.AuditEntry) []domain.AuditEntry {
	out := make([]domain.AuditEntry, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainAuditEntry(m))
	}
	return out
}
