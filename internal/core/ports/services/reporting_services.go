package services

import (
	"context"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating trip financial reports
type ReportingSvcFacade interface {
	// ProfitAndLoss computes the bucket breakdown and waterfall for each target currency.
	// With no targets, the trip's default currency is used.
	ProfitAndLoss(ctx context.Context, tripID string, targets []string) ([]domain.ProfitAndLossReport, error)

	// Balances computes net balance per native currency converted into the display currencies.
	// With no display currencies, the configured defaults are used.
	Balances(ctx context.Context, tripID string, displayCurrencies []string) (*domain.BalanceSummary, error)
}
