package utils

import (
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(int32(currency.Precision))
}

// FormatDisplay renders an amount with the currency symbol for presentation,
// e.g. "$ 1234.50". Unknown currencies fall back to the code with two decimals.
func FormatDisplay(amount decimal.Decimal, code domain.CurrencyCode, registry *domain.CurrencyRegistry) string {
	currency, ok := registry.Get(code)
	if !ok {
		return string(code) + " " + amount.StringFixed(2)
	}
	return currency.Symbol + " " + FormatWithCurrencyPrecision(amount, currency)
}
