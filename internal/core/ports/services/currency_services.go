package services

import (
	"context"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// ListTransactionTypes describes the transaction types and the bucket each one feeds.
	ListTransactionTypes(ctx context.Context) []domain.TransactionTypeInfo
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetCurrentSnapshot retrieves the snapshot currently used for calculations.
	GetCurrentSnapshot(ctx context.Context) (*domain.RateSnapshot, error)

	// GetCurrentTable returns the validated table built from the current snapshot.
	GetCurrentTable(ctx context.Context) (*domain.ExchangeRateTable, error)

	// ListRateSnapshots retrieves stored snapshots, newest first.
	ListRateSnapshots(ctx context.Context, limit int) ([]domain.RateSnapshot, error)

	// ConvertAmount converts an amount with the current table and returns the converted amount and effective rate.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, decimal.Decimal, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// SetManualRates validates and stores a manually edited rate set.
	SetManualRates(ctx context.Context, req dto.SetExchangeRatesRequest, userID string) (*domain.RateSnapshot, error)

	// RefreshRates pulls a snapshot from the configured rate source.
	RefreshRates(ctx context.Context, userID string) (*domain.RateSnapshot, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
