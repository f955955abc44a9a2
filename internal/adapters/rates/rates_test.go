package rates

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRateSource(t *testing.T) {
	source := NewStaticRateSource("egp", map[string]decimal.Decimal{"usd": decimal.NewFromInt(48)})

	snapshot, err := source.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyCode("EGP"), snapshot.Pivot)
	assert.Equal(t, domain.RateSourceConfig, snapshot.Source)
	assert.True(t, snapshot.Rates["USD"].Equal(decimal.NewFromInt(48)))

	snapshot.Rates["USD"] = decimal.NewFromInt(1)
	again, err := source.FetchRates(context.Background())
	require.NoError(t, err)
	assert.True(t, again.Rates["USD"].Equal(decimal.NewFromInt(48)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.FetchRates(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileRateSource(t *testing.T) {
	path := writeFile(t, "rates.yaml", "pivot: egp\nrates:\n  USD: \"48.25\"\n  eur: 52.1\n")

	snapshot, err := NewFileRateSource(path).FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyCode("EGP"), snapshot.Pivot)
	assert.Equal(t, domain.RateSourceFetched, snapshot.Source)
	require.Len(t, snapshot.Rates, 2)
	assert.True(t, snapshot.Rates["USD"].Equal(decimal.RequireFromString("48.25")))
	assert.True(t, snapshot.Rates["EUR"].Equal(decimal.RequireFromString("52.1")))
}

func TestFileRateSource_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewFileRateSource(filepath.Join(t.TempDir(), "missing.yaml")).FetchRates(ctx)
	assert.ErrorContains(t, err, "failed to read rates file")

	empty := writeFile(t, "empty.json", `{"pivot": "EGP"}`)
	_, err = NewFileRateSource(empty).FetchRates(ctx)
	assert.ErrorContains(t, err, "has no rates")

	bad := writeFile(t, "bad.json", `{"pivot": "EGP", "rates": {"USD": "lots"}}`)
	_, err = NewFileRateSource(bad).FetchRates(ctx)
	assert.ErrorContains(t, err, "invalid rate for usd")
}
