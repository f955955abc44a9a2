package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/core/ports"
	portsrepo "github.com/SscSPs/trip_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trip_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/trip_ledger_app/internal/dto"
	"github.com/SscSPs/trip_ledger_app/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultSnapshotListLimit = 20
	maxSnapshotListLimit     = 100
	defaultRateFetchBackoff  = 500 * time.Millisecond
)

// exchangeRateService owns the current rate table. Tables are only ever built
// through domain.BuildRateTable, so a table handed out is always complete.
type exchangeRateService struct {
	BaseService
	registry      *domain.CurrencyRegistry
	rateRepo      portsrepo.ExchangeRateRepositoryFacade
	pivot         domain.CurrencyCode
	source        ports.RateSource
	fallback      config.RateFallbackPolicy
	fetchAttempts int
	fetchBackoff  time.Duration
	now           func() time.Time

	mu          sync.Mutex
	cachedID    string
	cachedTable *domain.ExchangeRateTable
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateSource sets the source used by RefreshRates.
func WithRateSource(source ports.RateSource) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.source = source
	}
}

// WithRateFallbackPolicy sets what RefreshRates does when the source fails,
// and how many fetch attempts are made first.
func WithRateFallbackPolicy(policy config.RateFallbackPolicy, attempts int) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.fallback = policy
		if attempts > 0 {
			s.fetchAttempts = attempts
		}
	}
}

// WithRateFetchBackoff sets the wait before the second fetch attempt. The wait
// doubles for every further attempt. Zero retries immediately.
func WithRateFetchBackoff(backoff time.Duration) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if backoff >= 0 {
			s.fetchBackoff = backoff
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates a new exchange rate service with the provided options
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, registry *domain.CurrencyRegistry, pivot domain.CurrencyCode, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		registry:      registry,
		rateRepo:      rateRepo,
		pivot:         pivot,
		fallback:      config.RateFallbackFail,
		fetchAttempts: 1,
		fetchBackoff:  defaultRateFetchBackoff,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) GetCurrentSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	snapshot, err := s.rateRepo.FindLatestRateSnapshot(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no exchange rates have been set")
		}
		s.LogError(ctx, err, "Failed to load current rate snapshot")
		return nil, fmt.Errorf("failed to load current rate snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *exchangeRateService) GetCurrentTable(ctx context.Context) (*domain.ExchangeRateTable, error) {
	snapshot, err := s.GetCurrentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cachedTable != nil && s.cachedID == snapshot.SnapshotID {
		return s.cachedTable, nil
	}

	table, err := snapshot.Table(s.registry)
	if err != nil {
		s.LogError(ctx, err, "Stored rate snapshot does not form a valid table",
			slog.String("snapshot_id", snapshot.SnapshotID))
		return nil, err
	}
	s.cachedID = snapshot.SnapshotID
	s.cachedTable = table
	return table, nil
}

func (s *exchangeRateService) ListRateSnapshots(ctx context.Context, limit int) ([]domain.RateSnapshot, error) {
	if limit <= 0 {
		limit = defaultSnapshotListLimit
	}
	if limit > maxSnapshotListLimit {
		limit = maxSnapshotListLimit
	}
	snapshots, err := s.rateRepo.ListRateSnapshots(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rate snapshots")
		return nil, fmt.Errorf("failed to list rate snapshots: %w", err)
	}
	return snapshots, nil
}

func (s *exchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, decimal.Decimal, error) {
	from := domain.NormalizeCurrencyCode(fromCode)
	to := domain.NormalizeCurrencyCode(toCode)
	if err := s.registry.Validate(from); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if err := s.registry.Validate(to); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	table, err := s.GetCurrentTable(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return table.Convert(amount, from, to), table.EffectiveRate(from, to), nil
}

func (s *exchangeRateService) SetManualRates(ctx context.Context, req dto.SetExchangeRatesRequest, userID string) (*domain.RateSnapshot, error) {
	pivot := s.pivot
	if req.Pivot != "" {
		pivot = domain.NormalizeCurrencyCode(req.Pivot)
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(req.Rates))
	for raw, rate := range req.Rates {
		code := domain.NormalizeCurrencyCode(raw)
		if _, dup := rates[code]; dup {
			return nil, apperrors.NewValidationError("currency '" + string(code) + "' appears more than once")
		}
		rates[code] = rate
	}

	effectiveAt := s.now()
	if req.EffectiveAt != nil {
		effectiveAt = *req.EffectiveAt
	}

	snapshot, err := s.store(ctx, domain.RateSnapshot{
		Pivot:       pivot,
		Rates:       rates,
		Source:      domain.RateSourceManual,
		EffectiveAt: effectiveAt,
	}, userID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Exchange rates set manually",
		slog.String("snapshot_id", snapshot.SnapshotID),
		slog.String("pivot", string(snapshot.Pivot)),
		slog.String("user_id", userID))
	return snapshot, nil
}

func (s *exchangeRateService) RefreshRates(ctx context.Context, userID string) (*domain.RateSnapshot, error) {
	if s.source == nil {
		return nil, apperrors.NewValidationError("no exchange rate source is configured")
	}

	var (
		fetched domain.RateSnapshot
		err     error
	)
	for attempt := 1; attempt <= s.fetchAttempts; attempt++ {
		fetched, err = s.source.FetchRates(ctx)
		if err == nil || ctx.Err() != nil || attempt == s.fetchAttempts {
			break
		}
		delay := s.fetchBackoff << (attempt - 1)
		s.LogWarn(ctx, "Exchange rate fetch failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", delay),
			slog.String("error", err.Error()))
		if !waitForRetry(ctx, delay) {
			break
		}
	}

	var snapshot *domain.RateSnapshot
	if err == nil {
		if fetched.Source == "" {
			fetched.Source = domain.RateSourceFetched
		}
		if fetched.Pivot == "" {
			fetched.Pivot = s.pivot
		}
		if fetched.EffectiveAt.IsZero() {
			fetched.EffectiveAt = s.now()
		}
		snapshot, err = s.store(ctx, fetched, userID)
	}
	if err == nil {
		s.LogInfo(ctx, "Exchange rates refreshed",
			slog.String("snapshot_id", snapshot.SnapshotID),
			slog.String("source", string(snapshot.Source)))
		return snapshot, nil
	}

	if s.fallback == config.RateFallbackLastKnownGood {
		if latest, lerr := s.rateRepo.FindLatestRateSnapshot(ctx); lerr == nil {
			s.LogWarn(ctx, "Rate refresh failed, keeping last known good snapshot",
				slog.String("error", err.Error()),
				slog.String("snapshot_id", latest.SnapshotID))
			return latest, nil
		}
	}
	s.LogError(ctx, err, "Failed to refresh exchange rates")
	return nil, fmt.Errorf("failed to refresh exchange rates: %w", err)
}

// waitForRetry sleeps for delay and reports false if ctx ends first.
func waitForRetry(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// store validates the snapshot by building its table and persists the
// normalized rates, with the pivot entry set to one. The latest effective
// snapshot is the current one, so snapshots effective in the future are rejected.
func (s *exchangeRateService) store(ctx context.Context, snapshot domain.RateSnapshot, userID string) (*domain.RateSnapshot, error) {
	table, err := snapshot.Table(s.registry)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if snapshot.EffectiveAt.After(now) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("effective time %s is in the future",
			snapshot.EffectiveAt.Format(time.RFC3339)))
	}
	if snapshot.SnapshotID == "" {
		snapshot.SnapshotID = uuid.NewString()
	}
	snapshot.Pivot = table.Pivot()
	snapshot.Rates = table.Entries()
	snapshot.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.rateRepo.SaveRateSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to save rate snapshot", slog.String("snapshot_id", snapshot.SnapshotID))
		return nil, fmt.Errorf("failed to save rate snapshot: %w", err)
	}
	return &snapshot, nil
}
