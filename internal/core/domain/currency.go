package domain

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
)

// CurrencyCode identifies a currency in the registry (e.g., "EGP").
type CurrencyCode string

// NormalizeCurrencyCode trims and upper-cases a raw code.
func NormalizeCurrencyCode(raw string) CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(raw)))
}

func (c CurrencyCode) String() string { return string(c) }

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode CurrencyCode `json:"currencyCode"` // e.g., "USD"
	Symbol       string       `json:"symbol"`       // e.g., "$"
	Name         string       `json:"name"`         // e.g., "US Dollar"
	Precision    int          `json:"precision"`    // minor unit digits
}

// DefaultCurrencies is the catalogue a trip operator works with out of the box.
func DefaultCurrencies() []Currency {
	return []Currency{
		{CurrencyCode: "EGP", Name: "Egyptian Pound"},
		{CurrencyCode: "USD", Name: "US Dollar"},
		{CurrencyCode: "EUR", Name: "Euro"},
		{CurrencyCode: "GBP", Name: "British Pound"},
		{CurrencyCode: "SAR", Name: "Saudi Riyal"},
		{CurrencyCode: "AED", Name: "UAE Dirham"},
	}
}

// CurrencyRegistry is the immutable catalogue of known currencies.
// It is built once at startup and shared by reference.
type CurrencyRegistry struct {
	order []CurrencyCode
	index map[CurrencyCode]Currency
}

// NewCurrencyRegistry validates and freezes the given currencies.
// Missing symbol and precision are filled from the ISO catalogue when the code is known there.
func NewCurrencyRegistry(currencies ...Currency) (*CurrencyRegistry, error) {
	if len(currencies) == 0 {
		return nil, apperrors.NewValidationError("currency registry cannot be empty")
	}

	r := &CurrencyRegistry{
		order: make([]CurrencyCode, 0, len(currencies)),
		index: make(map[CurrencyCode]Currency, len(currencies)),
	}
	for _, c := range currencies {
		c.CurrencyCode = NormalizeCurrencyCode(string(c.CurrencyCode))
		if c.CurrencyCode == "" {
			return nil, apperrors.NewValidationError("currency code cannot be empty")
		}
		if _, exists := r.index[c.CurrencyCode]; exists {
			return nil, fmt.Errorf("%w: currency '%s' registered twice", apperrors.ErrDuplicate, c.CurrencyCode)
		}

		if iso := money.GetCurrency(string(c.CurrencyCode)); iso != nil {
			if c.Symbol == "" {
				c.Symbol = iso.Grapheme
			}
			if c.Precision == 0 {
				c.Precision = iso.Fraction
			}
		}
		if c.Symbol == "" {
			c.Symbol = string(c.CurrencyCode)
		}
		if c.Name == "" {
			c.Name = string(c.CurrencyCode)
		}

		r.order = append(r.order, c.CurrencyCode)
		r.index[c.CurrencyCode] = c
	}
	return r, nil
}

// CurrenciesFromCodes builds registry input from bare codes, using DefaultCurrencies names where available.
func CurrenciesFromCodes(codes []string) []Currency {
	names := make(map[CurrencyCode]string)
	for _, c := range DefaultCurrencies() {
		names[c.CurrencyCode] = c.Name
	}
	out := make([]Currency, 0, len(codes))
	for _, raw := range codes {
		code := NormalizeCurrencyCode(raw)
		if code == "" {
			continue
		}
		out = append(out, Currency{CurrencyCode: code, Name: names[code]})
	}
	return out
}

// Has reports whether code is registered.
func (r *CurrencyRegistry) Has(code CurrencyCode) bool {
	_, ok := r.index[code]
	return ok
}

// Get returns the metadata for code.
func (r *CurrencyRegistry) Get(code CurrencyCode) (Currency, bool) {
	c, ok := r.index[code]
	return c, ok
}

// Validate returns an UnknownCurrencyError when code is not registered.
func (r *CurrencyRegistry) Validate(code CurrencyCode) error {
	if !r.Has(code) {
		return &apperrors.UnknownCurrencyError{Code: string(code)}
	}
	return nil
}

// Codes returns the registered codes in registration order.
func (r *CurrencyRegistry) Codes() []CurrencyCode {
	out := make([]CurrencyCode, len(r.order))
	copy(out, r.order)
	return out
}

// List returns the registered currencies in registration order.
func (r *CurrencyRegistry) List() []Currency {
	out := make([]Currency, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.index[code])
	}
	return out
}

// Len returns the number of registered currencies.
func (r *CurrencyRegistry) Len() int { return len(r.order) }
