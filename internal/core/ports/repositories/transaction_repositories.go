package repositories

import (
	"context"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
)

// TransactionReader defines read operations for trip transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction of a trip.
	FindTransactionByID(ctx context.Context, tripID, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByTrip retrieves every transaction of a trip in insertion order.
	ListTransactionsByTrip(ctx context.Context, tripID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for trip transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction replaces the editable fields of an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, tripID, transactionID string) error

	// DeleteTransactionsByTrip removes every transaction of a trip.
	DeleteTransactionsByTrip(ctx context.Context, tripID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
