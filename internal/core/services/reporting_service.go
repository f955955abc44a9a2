package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/trip_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/trip_ledger_app/internal/utils/accounting"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	registry       *domain.CurrencyRegistry
	trips          portssvc.TripSvcFacade
	rates          portssvc.ExchangeRateReaderSvc
	pivot          domain.CurrencyCode
	defaultDisplay []domain.CurrencyCode
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithDefaultDisplayCurrencies sets the currencies used by Balances when none are requested.
func WithDefaultDisplayCurrencies(codes []string) ReportingServiceOption {
	return func(s *reportingService) {
		s.defaultDisplay = make([]domain.CurrencyCode, 0, len(codes))
		for _, code := range codes {
			s.defaultDisplay = append(s.defaultDisplay, domain.NormalizeCurrencyCode(code))
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(trips portssvc.TripSvcFacade, rates portssvc.ExchangeRateReaderSvc, registry *domain.CurrencyRegistry, pivot domain.CurrencyCode, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		registry:       registry,
		trips:          trips,
		rates:          rates,
		pivot:          pivot,
		defaultDisplay: []domain.CurrencyCode{pivot},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// resolveCurrencies normalizes and validates requested codes, dropping repeats
// while keeping the first occurrence's position.
func (s *reportingService) resolveCurrencies(requested []string) ([]domain.CurrencyCode, error) {
	codes := make([]domain.CurrencyCode, 0, len(requested))
	for _, raw := range requested {
		code := domain.NormalizeCurrencyCode(raw)
		if err := s.registry.Validate(code); err != nil {
			return nil, err
		}
		if !slices.Contains(codes, code) {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// defaultTarget is the trip's default currency, or the pivot when the trip has
// none or its stored currency is no longer registered.
func (s *reportingService) defaultTarget(ctx context.Context, trip *domain.Trip) domain.CurrencyCode {
	if trip.DefaultCurrency == "" {
		return s.pivot
	}
	if err := s.registry.Validate(trip.DefaultCurrency); err != nil {
		s.LogWarn(ctx, "Trip default currency is not registered, reporting in pivot currency",
			slog.String("trip_id", trip.TripID),
			slog.String("default_currency", string(trip.DefaultCurrency)),
			slog.String("pivot", string(s.pivot)))
		return s.pivot
	}
	return trip.DefaultCurrency
}

// ProfitAndLoss generates one profit and loss report per target currency
func (s *reportingService) ProfitAndLoss(ctx context.Context, tripID string, targets []string) ([]domain.ProfitAndLossReport, error) {
	resolved, err := s.resolveCurrencies(targets)
	if err != nil {
		return nil, err
	}

	trip, err := s.trips.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		resolved = []domain.CurrencyCode{s.defaultTarget(ctx, trip)}
	}

	ledger, err := s.trips.LoadLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}
	table, err := s.rates.GetCurrentTable(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := accounting.ProfitAndLossMany(ctx, ledger.Transactions(), table, resolved)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute profit and loss", slog.String("trip_id", tripID))
		return nil, fmt.Errorf("failed to compute profit and loss: %w", err)
	}

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("trip_id", tripID),
		slog.Int("target_count", len(reports)),
		slog.Int("transaction_count", ledger.Len()))
	return reports, nil
}

// Balances generates the per-currency balance summary of a trip
func (s *reportingService) Balances(ctx context.Context, tripID string, displayCurrencies []string) (*domain.BalanceSummary, error) {
	display, err := s.resolveCurrencies(displayCurrencies)
	if err != nil {
		return nil, err
	}
	if len(display) == 0 {
		display = slices.Clone(s.defaultDisplay)
	}

	ledger, err := s.trips.LoadLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}
	table, err := s.rates.GetCurrentTable(ctx)
	if err != nil {
		return nil, err
	}

	rows := accounting.ComputeBalances(ledger.Transactions(), table, display)
	s.LogInfo(ctx, "Balance summary generated successfully",
		slog.String("trip_id", tripID),
		slog.Int("row_count", len(rows)))
	return &domain.BalanceSummary{DisplayCurrencies: display, Rows: rows}, nil
}
