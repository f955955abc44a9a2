package accounting

import (
	"context"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Aggregate classifies transactions into buckets and converts every amount into target.
// Items keep the order of the input slice. Empty buckets have a zero total and no items.
// Every transaction currency and target must be covered by table.
func Aggregate(transactions []domain.Transaction, table *domain.ExchangeRateTable, target domain.CurrencyCode) domain.BucketResults {
	results := domain.BucketResults{Target: target}
	for _, b := range domain.Buckets() {
		*results.Get(b) = domain.BucketResult{
			Bucket: b,
			Total:  decimal.Zero,
			Items:  []domain.BucketItem{},
		}
	}

	for _, txn := range transactions {
		bucket := results.Get(txn.Bucket())
		item := domain.BucketItem{
			TransactionID:    txn.TransactionID,
			OriginalCurrency: txn.CurrencyCode,
			OriginalAmount:   txn.Amount,
			ConvertedAmount:  domain.Convert(txn.Amount, txn.CurrencyCode, target, table),
			EffectiveRate:    table.EffectiveRate(txn.CurrencyCode, target),
			Type:             txn.Type,
		}
		bucket.Items = append(bucket.Items, item)
		bucket.Total = bucket.Total.Add(item.ConvertedAmount)
	}
	return results
}

// ProfitAndLoss aggregates transactions for target and derives the waterfall from that aggregation.
func ProfitAndLoss(transactions []domain.Transaction, table *domain.ExchangeRateTable, target domain.CurrencyCode) domain.ProfitAndLossReport {
	buckets := Aggregate(transactions, table, target)
	return domain.ProfitAndLossReport{
		Target:    target,
		Buckets:   buckets,
		Waterfall: ComputeWaterfall(buckets),
	}
}

// ProfitAndLossMany computes one report per target. Each target is aggregated
// straight from the original amounts, never from another target's result.
// Targets are processed concurrently; results follow the order of targets.
func ProfitAndLossMany(ctx context.Context, transactions []domain.Transaction, table *domain.ExchangeRateTable, targets []domain.CurrencyCode) ([]domain.ProfitAndLossReport, error) {
	reports := make([]domain.ProfitAndLossReport, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = ProfitAndLoss(transactions, table, target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
