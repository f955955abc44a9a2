package ports

import (
	"context"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
)

// RateSource supplies raw rate snapshots from outside the system
// (a market feed, a config file, an operator's spreadsheet).
// The returned snapshot is unvalidated; callers build a table from it.
type RateSource interface {
	FetchRates(ctx context.Context) (domain.RateSnapshot, error)
}
