package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ExchangeRateTable maps every registered currency to the value of one unit
// of that currency expressed in the pivot unit. A constructed table is total
// over its registry and is never mutated.
type ExchangeRateTable struct {
	pivot CurrencyCode
	order []CurrencyCode
	rates map[CurrencyCode]decimal.Decimal
}

// BuildRateTable validates raw entries against the registry and freezes them.
// The pivot's own rate is always forced to exactly one.
func BuildRateTable(registry *CurrencyRegistry, entries map[CurrencyCode]decimal.Decimal, pivot CurrencyCode) (*ExchangeRateTable, error) {
	if err := registry.Validate(pivot); err != nil {
		return nil, fmt.Errorf("invalid pivot currency: %w", err)
	}

	supplied := make([]string, 0, len(entries))
	for code := range entries {
		supplied = append(supplied, string(code))
	}
	sort.Strings(supplied)
	for _, code := range supplied {
		if err := registry.Validate(CurrencyCode(code)); err != nil {
			return nil, err
		}
	}

	table := &ExchangeRateTable{
		pivot: pivot,
		order: registry.Codes(),
		rates: make(map[CurrencyCode]decimal.Decimal, registry.Len()),
	}

	var missing []string
	for _, code := range table.order {
		if code == pivot {
			table.rates[code] = decimal.NewFromInt(1)
			continue
		}
		rate, ok := entries[code]
		if !ok {
			missing = append(missing, string(code))
			continue
		}
		if !rate.IsPositive() {
			return nil, &apperrors.InvalidRateError{Code: string(code), Rate: rate.String()}
		}
		table.rates[code] = rate
	}
	if len(missing) > 0 {
		return nil, &apperrors.IncompleteRateTableError{Missing: missing}
	}
	return table, nil
}

// BuildRateTableFromFloats is BuildRateTable for snapshots delivered as floats.
// NaN and infinite values are rejected before any decimal conversion.
func BuildRateTableFromFloats(registry *CurrencyRegistry, entries map[CurrencyCode]float64, pivot CurrencyCode) (*ExchangeRateTable, error) {
	converted := make(map[CurrencyCode]decimal.Decimal, len(entries))
	for code, rate := range entries {
		if code == pivot {
			converted[code] = decimal.NewFromInt(1)
			continue
		}
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, &apperrors.InvalidRateError{Code: string(code), Rate: strconv.FormatFloat(rate, 'g', -1, 64)}
		}
		converted[code] = decimal.NewFromFloat(rate)
	}
	return BuildRateTable(registry, converted, pivot)
}

// Pivot returns the reference currency of the table.
func (t *ExchangeRateTable) Pivot() CurrencyCode { return t.pivot }

// Rate returns the pivot-relative rate of code.
// Codes outside the table's registry are a programming error and panic.
func (t *ExchangeRateTable) Rate(code CurrencyCode) decimal.Decimal {
	rate, ok := t.rates[code]
	if !ok {
		panic(fmt.Sprintf("exchange rate table has no rate for '%s'", code))
	}
	return rate
}

// Has reports whether the table covers code.
func (t *ExchangeRateTable) Has(code CurrencyCode) bool {
	_, ok := t.rates[code]
	return ok
}

// Codes returns the covered currencies in registry order.
func (t *ExchangeRateTable) Codes() []CurrencyCode {
	out := make([]CurrencyCode, len(t.order))
	copy(out, t.order)
	return out
}

// Entries returns a copy of the underlying rates.
func (t *ExchangeRateTable) Entries() map[CurrencyCode]decimal.Decimal {
	out := make(map[CurrencyCode]decimal.Decimal, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}

// EffectiveRate is the multiplier that converts an amount in from into to.
func (t *ExchangeRateTable) EffectiveRate(from, to CurrencyCode) decimal.Decimal {
	if from == to {
		return decimal.NewFromInt(1)
	}
	return t.Rate(from).Div(t.Rate(to))
}

// Convert expresses amount (in from) in to. Same-currency conversion returns amount unchanged.
func (t *ExchangeRateTable) Convert(amount decimal.Decimal, from, to CurrencyCode) decimal.Decimal {
	if from == to {
		return amount
	}
	return amount.Mul(t.Rate(from)).Div(t.Rate(to))
}

// Convert is the single conversion primitive used across the system.
func Convert(amount decimal.Decimal, from, to CurrencyCode, table *ExchangeRateTable) decimal.Decimal {
	return table.Convert(amount, from, to)
}

// RateSource identifies where a rate snapshot came from.
type RateSource string

const (
	RateSourceManual  RateSource = "MANUAL"
	RateSourceFetched RateSource = "FETCHED"
	RateSourceConfig  RateSource = "CONFIG"
)

// RateSnapshot is a stored set of raw rates from which a table can be rebuilt.
type RateSnapshot struct {
	SnapshotID  string                           `json:"snapshotID"`
	Pivot       CurrencyCode                     `json:"pivot"`
	Rates       map[CurrencyCode]decimal.Decimal `json:"rates"`
	Source      RateSource                       `json:"source"`
	EffectiveAt time.Time                        `json:"effectiveAt"`
	AuditFields
}

// Table rebuilds and validates the snapshot's rate table.
func (s RateSnapshot) Table(registry *CurrencyRegistry) (*ExchangeRateTable, error) {
	return BuildRateTable(registry, s.Rates, s.Pivot)
}
