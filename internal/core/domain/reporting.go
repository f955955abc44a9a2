package domain

import (
	"github.com/shopspring/decimal"
)

// BucketItem is one transaction's contribution to a bucket, kept for audit.
type BucketItem struct {
	TransactionID    string          `json:"transactionID"`
	OriginalCurrency CurrencyCode    `json:"originalCurrency"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	EffectiveRate    decimal.Decimal `json:"effectiveRate"`
	Type             TransactionType `json:"type"`
}

// BucketResult is the converted total of one bucket plus its itemized breakdown.
type BucketResult struct {
	Bucket Bucket          `json:"bucket"`
	Total  decimal.Decimal `json:"total"`
	Items  []BucketItem    `json:"items"`
}

// BucketResults holds the four bucket results for one target currency.
type BucketResults struct {
	Target                 CurrencyCode `json:"target"`
	IncomeAndClientCustody BucketResult `json:"incomeAndClientCustody"`
	Expense                BucketResult `json:"expense"`
	OwnerCustody           BucketResult `json:"ownerCustody"`
	DriverFee              BucketResult `json:"driverFee"`
}

// Get returns a pointer to the result for bucket b.
func (r *BucketResults) Get(b Bucket) *BucketResult {
	switch b {
	case BucketIncomeAndClientCustody:
		return &r.IncomeAndClientCustody
	case BucketExpense:
		return &r.Expense
	case BucketOwnerCustody:
		return &r.OwnerCustody
	case BucketDriverFee:
		return &r.DriverFee
	}
	return nil
}

// WaterfallResult is the ordered chain of running totals that yields net trip profit or loss.
type WaterfallResult struct {
	Target         CurrencyCode    `json:"target"`
	GrossInflow    decimal.Decimal `json:"grossInflow"`
	AfterExpenses  decimal.Decimal `json:"afterExpenses"`
	AfterDriverFee decimal.Decimal `json:"afterDriverFee"`
	NetResult      decimal.Decimal `json:"netResult"`
}

// ProfitAndLossReport pairs the bucket breakdown with its waterfall for one target currency.
type ProfitAndLossReport struct {
	Target    CurrencyCode    `json:"target"`
	Buckets   BucketResults   `json:"buckets"`
	Waterfall WaterfallResult `json:"waterfall"`
}

// ConvertedAmount is an amount expressed in a display currency.
type ConvertedAmount struct {
	CurrencyCode CurrencyCode    `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
}

// BalanceRow is the signed net balance held in one native currency and its display equivalents.
type BalanceRow struct {
	CurrencyCode CurrencyCode      `json:"currencyCode"`
	NetBalance   decimal.Decimal   `json:"netBalance"`
	Converted    []ConvertedAmount `json:"converted"`
}

// BalanceSummary is the balance report of a trip for a set of display currencies.
type BalanceSummary struct {
	DisplayCurrencies []CurrencyCode `json:"displayCurrencies"`
	Rows              []BalanceRow   `json:"rows"`
}
