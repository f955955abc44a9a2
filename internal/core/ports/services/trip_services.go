package services

import (
	"context"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/dto"
)

// TripReaderSvc defines read operations for trips
type TripReaderSvc interface {
	GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error)
	ListTrips(ctx context.Context) ([]domain.Trip, error)
}

// TripWriterSvc defines write operations for trips
type TripWriterSvc interface {
	CreateTrip(ctx context.Context, req dto.CreateTripRequest, userID string) (*domain.Trip, error)
	DeleteTrip(ctx context.Context, tripID string, userID string) error
}

// LedgerReaderSvc defines read operations for a trip's transactions
type LedgerReaderSvc interface {
	GetTransaction(ctx context.Context, tripID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, tripID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// LoadLedger returns a validated snapshot of the trip's ledger.
	LoadLedger(ctx context.Context, tripID string) (*domain.TripLedger, error)
}

// LedgerWriterSvc defines write operations for a trip's transactions
type LedgerWriterSvc interface {
	AddTransaction(ctx context.Context, tripID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, tripID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, tripID, transactionID string, userID string) error

	// ResetLedger discards every transaction of the trip.
	ResetLedger(ctx context.Context, tripID string, userID string) error
}

// TripSvcFacade combines all trip-related service interfaces
type TripSvcFacade interface {
	TripReaderSvc
	TripWriterSvc
	LedgerReaderSvc
	LedgerWriterSvc
}
