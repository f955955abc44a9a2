package dto

import (
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetExchangeRatesRequest replaces the current rate table.
// Every rate is the value of one unit of the currency expressed in the pivot currency.
type SetExchangeRatesRequest struct {
	Pivot       string                     `json:"pivot" binding:"omitempty,currency"`
	Rates       map[string]decimal.Decimal `json:"rates" binding:"required"`
	EffectiveAt *time.Time                 `json:"effectiveAt"`
}

// RateSnapshotResponse defines the data returned for a rate snapshot.
type RateSnapshotResponse struct {
	SnapshotID  string                     `json:"snapshotID"`
	Pivot       string                     `json:"pivot"`
	Rates       map[string]decimal.Decimal `json:"rates"`
	Source      string                     `json:"source"`
	EffectiveAt time.Time                  `json:"effectiveAt"`
	CreatedAt   time.Time                  `json:"createdAt"`
	CreatedBy   string                     `json:"createdBy"`
}

// ToRateSnapshotResponse converts a domain.RateSnapshot to RateSnapshotResponse DTO
func ToRateSnapshotResponse(s *domain.RateSnapshot) RateSnapshotResponse {
	rates := make(map[string]decimal.Decimal, len(s.Rates))
	for code, rate := range s.Rates {
		rates[string(code)] = rate
	}
	return RateSnapshotResponse{
		SnapshotID:  s.SnapshotID,
		Pivot:       string(s.Pivot),
		Rates:       rates,
		Source:      string(s.Source),
		EffectiveAt: s.EffectiveAt,
		CreatedAt:   s.CreatedAt,
		CreatedBy:   s.CreatedBy,
	}
}

// ToRateSnapshotResponses converts a slice of domain.RateSnapshot to DTOs
func ToRateSnapshotResponses(snapshots []domain.RateSnapshot) []RateSnapshotResponse {
	res := make([]RateSnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		res[i] = ToRateSnapshotResponse(&s)
	}
	return res
}

// ConvertQuery holds the query parameters of a conversion request.
// Amount is parsed separately to keep full decimal precision.
type ConvertQuery struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,currency"`
	To     string `form:"to" binding:"required,currency"`
}

// ConvertResponse is the result of converting an amount with the current table.
type ConvertResponse struct {
	Amount        decimal.Decimal `json:"amount"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Converted     decimal.Decimal `json:"converted"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
}

// ListRateSnapshotsParams defines parameters for listing stored rate snapshots.
type ListRateSnapshotsParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}
