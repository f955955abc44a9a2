package services

import (
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/core/ports"
	portsrepo "github.com/SscSPs/trip_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trip_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/trip_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// source may be nil, in which case rates can only be set manually.
func NewServiceContainer(cfg *config.Config, registry *domain.CurrencyRegistry, repos portsrepo.RepositoryProvider, source ports.RateSource) *portssvc.ServiceContainer {
	pivot := domain.NormalizeCurrencyCode(cfg.PivotCurrency)

	container := &portssvc.ServiceContainer{}
	container.Currency = NewCurrencyService(registry)

	rateOptions := []ExchangeRateServiceOption{
		WithRateFallbackPolicy(cfg.RateFallbackPolicy, cfg.RateFetchAttempts),
		WithRateFetchBackoff(cfg.RateFetchBackoff),
	}
	if source != nil {
		rateOptions = append(rateOptions, WithRateSource(source))
	}
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, registry, pivot, rateOptions...)

	container.Trip = NewTripService(repos.TripRepo, repos.TransactionRepo, registry)

	container.Reporting = NewReportingService(
		container.Trip,
		container.ExchangeRate,
		registry,
		pivot,
		WithDefaultDisplayCurrencies(cfg.DisplayCurrencies),
	)

	return container
}
