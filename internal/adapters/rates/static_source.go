// Package rates holds RateSource implementations.
package rates

import (
	"context"
	"maps"
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

// StaticRateSource serves a fixed set of rates, typically from configuration.
type StaticRateSource struct {
	pivot domain.CurrencyCode
	rates map[domain.CurrencyCode]decimal.Decimal
	now   func() time.Time
}

var _ ports.RateSource = (*StaticRateSource)(nil)

// NewStaticRateSource builds a source from code to rate pairs, each rate
// expressed in units of pivot.
func NewStaticRateSource(pivot string, rates map[string]decimal.Decimal) *StaticRateSource {
	normalized := make(map[domain.CurrencyCode]decimal.Decimal, len(rates))
	for code, rate := range rates {
		normalized[domain.NormalizeCurrencyCode(code)] = rate
	}
	return &StaticRateSource{
		pivot: domain.NormalizeCurrencyCode(pivot),
		rates: normalized,
		now:   time.Now,
	}
}

// FetchRates returns a copy of the configured rates.
func (s *StaticRateSource) FetchRates(ctx context.Context) (domain.RateSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.RateSnapshot{}, err
	}
	return domain.RateSnapshot{
		Pivot:       s.pivot,
		Rates:       maps.Clone(s.rates),
		Source:      domain.RateSourceConfig,
		EffectiveAt: s.now(),
	}, nil
}
