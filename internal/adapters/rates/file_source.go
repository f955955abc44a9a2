package rates

import (
	"context"
	"fmt"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// FileRateSource reads rates from a YAML, JSON or TOML file every time it is
// fetched, so an operator can edit the file and trigger a refresh:
//
//	pivot: EGP
//	rates:
//	  USD: "48.25"
//	  EUR: "52.10"
type FileRateSource struct {
	path string
}

var _ ports.RateSource = (*FileRateSource)(nil)

// NewFileRateSource creates a source backed by the file at path.
func NewFileRateSource(path string) *FileRateSource {
	return &FileRateSource{path: path}
}

// FetchRates parses the file. Missing or malformed rates are reported as
// errors here; completeness is checked when the table is built.
func (s *FileRateSource) FetchRates(ctx context.Context) (domain.RateSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.RateSnapshot{}, err
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("failed to read rates file %s: %w", s.path, err)
	}

	raw := v.GetStringMapString("rates")
	if len(raw) == 0 {
		return domain.RateSnapshot{}, fmt.Errorf("rates file %s has no rates", s.path)
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(raw))
	for code, value := range raw {
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return domain.RateSnapshot{}, fmt.Errorf("rates file %s: invalid rate for %s: %w", s.path, code, err)
		}
		// viper lower-cases keys
		rates[domain.NormalizeCurrencyCode(code)] = rate
	}

	return domain.RateSnapshot{
		Pivot:  domain.NormalizeCurrencyCode(v.GetString("pivot")),
		Rates:  rates,
		Source: domain.RateSourceFetched,
	}, nil
}
