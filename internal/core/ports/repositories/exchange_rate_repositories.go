package repositories

import (
	"context"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for stored rate snapshots
type ExchangeRateReader interface {
	// FindLatestRateSnapshot retrieves the most recently effective snapshot.
	FindLatestRateSnapshot(ctx context.Context) (*domain.RateSnapshot, error)

	// ListRateSnapshots retrieves up to limit snapshots, newest first.
	ListRateSnapshots(ctx context.Context, limit int) ([]domain.RateSnapshot, error)
}

// ExchangeRateWriter defines write operations for rate snapshots
type ExchangeRateWriter interface {
	// SaveRateSnapshot persists a validated snapshot.
	SaveRateSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
