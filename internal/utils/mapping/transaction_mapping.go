package mapping

import (
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Seq is assigned by the store.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		TripID:          d.TripID,
		TransactionDate: d.Date,
		Description:     d.Description,
		Amount:          d.Amount,
		CurrencyCode:    string(d.CurrencyCode),
		TransactionType: string(d.Type),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		TripID:        m.TripID,
		Date:          m.TransactionDate,
		Description:   m.Description,
		Amount:        m.Amount,
		CurrencyCode:  domain.CurrencyCode(m.CurrencyCode),
		Type:          domain.TransactionType(m.TransactionType),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactions converts a slice of model Transactions to domain Transactions
func ToDomainTransactions(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
