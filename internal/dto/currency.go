package dto

import (
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
)

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: string(curr.CurrencyCode),
		Symbol:       curr.Symbol,
		Name:         curr.Name,
		Precision:    curr.Precision,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}

// TransactionTypeResponse describes one transaction type and the bucket it feeds.
type TransactionTypeResponse struct {
	Type      string `json:"type"`
	Label     string `json:"label"`
	Bucket    string `json:"bucket"`
	Direction string `json:"direction"`
}

// ToTransactionTypeResponses converts the transaction type catalogue to DTOs
func ToTransactionTypeResponses(infos []domain.TransactionTypeInfo) []TransactionTypeResponse {
	res := make([]TransactionTypeResponse, len(infos))
	for i, info := range infos {
		res[i] = TransactionTypeResponse{
			Type:      string(info.Type),
			Label:     info.Label,
			Bucket:    string(info.Bucket),
			Direction: info.Direction,
		}
	}
	return res
}
