package dto

import (
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/utils"
	"github.com/shopspring/decimal"
)

// BucketItemResponse is one converted transaction within a bucket.
type BucketItemResponse struct {
	TransactionID    string          `json:"transactionID"`
	Type             string          `json:"type"`
	OriginalCurrency string          `json:"originalCurrency"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	EffectiveRate    decimal.Decimal `json:"effectiveRate"`
}

// BucketResponse is the converted total of one bucket and its contributing items.
type BucketResponse struct {
	Bucket string               `json:"bucket"`
	Total  decimal.Decimal      `json:"total"`
	Items  []BucketItemResponse `json:"items"`
}

// WaterfallResponse holds the running totals of the trip result.
type WaterfallResponse struct {
	GrossInflow    decimal.Decimal `json:"grossInflow"`
	AfterExpenses  decimal.Decimal `json:"afterExpenses"`
	AfterDriverFee decimal.Decimal `json:"afterDriverFee"`
	NetResult      decimal.Decimal `json:"netResult"`
}

// ProfitAndLossResponse is the report for one target currency.
type ProfitAndLossResponse struct {
	TargetCurrency string            `json:"targetCurrency"`
	Buckets        []BucketResponse  `json:"buckets"`
	Waterfall      WaterfallResponse `json:"waterfall"`
}

// ProfitAndLossReportsResponse wraps the reports of every requested target currency.
type ProfitAndLossReportsResponse struct {
	TripID  string                  `json:"tripID"`
	Reports []ProfitAndLossResponse `json:"reports"`
}

// ConvertedAmountResponse is a balance expressed in one display currency.
type ConvertedAmountResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
	Display      string          `json:"display"`
}

// BalanceRowResponse is the net balance held in one native currency.
type BalanceRowResponse struct {
	CurrencyCode string                    `json:"currencyCode"`
	NetBalance   decimal.Decimal           `json:"netBalance"`
	Display      string                    `json:"display"`
	Converted    []ConvertedAmountResponse `json:"converted"`
}

// BalancesResponse wraps the balance summary of a trip.
type BalancesResponse struct {
	TripID            string               `json:"tripID"`
	DisplayCurrencies []string             `json:"displayCurrencies"`
	Rows              []BalanceRowResponse `json:"rows"`
}

// ToProfitAndLossResponse converts a domain report to its DTO. Buckets are
// listed in their fixed order.
func ToProfitAndLossResponse(r domain.ProfitAndLossReport) ProfitAndLossResponse {
	buckets := make([]BucketResponse, 0, len(domain.Buckets()))
	for _, b := range domain.Buckets() {
		result := r.Buckets.Get(b)
		items := make([]BucketItemResponse, len(result.Items))
		for i, item := range result.Items {
			items[i] = BucketItemResponse{
				TransactionID:    item.TransactionID,
				Type:             string(item.Type),
				OriginalCurrency: string(item.OriginalCurrency),
				OriginalAmount:   item.OriginalAmount,
				ConvertedAmount:  item.ConvertedAmount,
				EffectiveRate:    item.EffectiveRate,
			}
		}
		buckets = append(buckets, BucketResponse{Bucket: string(b), Total: result.Total, Items: items})
	}
	return ProfitAndLossResponse{
		TargetCurrency: string(r.Target),
		Buckets:        buckets,
		Waterfall: WaterfallResponse{
			GrossInflow:    r.Waterfall.GrossInflow,
			AfterExpenses:  r.Waterfall.AfterExpenses,
			AfterDriverFee: r.Waterfall.AfterDriverFee,
			NetResult:      r.Waterfall.NetResult,
		},
	}
}

// ToBalancesResponse converts balance rows to their DTO. Amounts keep full
// precision; the display strings are rounded to each currency's precision.
func ToBalancesResponse(tripID string, summary *domain.BalanceSummary, registry *domain.CurrencyRegistry) BalancesResponse {
	res := BalancesResponse{
		TripID:            tripID,
		DisplayCurrencies: make([]string, len(summary.DisplayCurrencies)),
		Rows:              make([]BalanceRowResponse, len(summary.Rows)),
	}
	for i, code := range summary.DisplayCurrencies {
		res.DisplayCurrencies[i] = string(code)
	}
	for i, row := range summary.Rows {
		converted := make([]ConvertedAmountResponse, len(row.Converted))
		for j, c := range row.Converted {
			converted[j] = ConvertedAmountResponse{
				CurrencyCode: string(c.CurrencyCode),
				Amount:       c.Amount,
				Display:      utils.FormatDisplay(c.Amount, c.CurrencyCode, registry),
			}
		}
		res.Rows[i] = BalanceRowResponse{
			CurrencyCode: string(row.CurrencyCode),
			NetBalance:   row.NetBalance,
			Display:      utils.FormatDisplay(row.NetBalance, row.CurrencyCode, registry),
			Converted:    converted,
		}
	}
	return res
}
