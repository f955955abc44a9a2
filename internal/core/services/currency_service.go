package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/trip_ledger_app/internal/core/ports/services"
)

type currencyService struct {
	BaseService
	registry *domain.CurrencyRegistry
}

// NewCurrencyService exposes the configured currency registry.
func NewCurrencyService(registry *domain.CurrencyRegistry) portssvc.CurrencySvcFacade {
	return &currencyService{registry: registry}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := domain.NormalizeCurrencyCode(currencyCode)
	currency, ok := s.registry.Get(code)
	if !ok {
		s.LogDebug(ctx, "Currency not registered", slog.String("currency_code", string(code)))
		return nil, apperrors.NewNotFoundError("currency not found: " + string(code))
	}
	return &currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.registry.List(), nil
}

func (s *currencyService) ListTransactionTypes(ctx context.Context) []domain.TransactionTypeInfo {
	return domain.DescribeTransactionTypes()
}
