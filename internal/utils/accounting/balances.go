package accounting

import (
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeBalances returns the signed net balance held in each native currency
// and its equivalent in every display currency.
//
// Inflow buckets add the amount and outflow buckets subtract it. Rows follow the
// order in which currencies first appear in transactions, followed by display
// currencies the ledger never touched. A zero balance is only reported for a
// display currency.
func ComputeBalances(transactions []domain.Transaction, table *domain.ExchangeRateTable, displayCurrencies []domain.CurrencyCode) []domain.BalanceRow {
	net := make(map[domain.CurrencyCode]decimal.Decimal)
	var order []domain.CurrencyCode
	for _, txn := range transactions {
		current, seen := net[txn.CurrencyCode]
		if !seen {
			order = append(order, txn.CurrencyCode)
			current = decimal.Zero
		}
		net[txn.CurrencyCode] = current.Add(txn.SignedAmount())
	}

	display := make(map[domain.CurrencyCode]bool, len(displayCurrencies))
	for _, code := range displayCurrencies {
		if _, seen := net[code]; !seen && !display[code] {
			order = append(order, code)
			net[code] = decimal.Zero
		}
		display[code] = true
	}

	rows := make([]domain.BalanceRow, 0, len(order))
	for _, code := range order {
		balance := net[code]
		if balance.IsZero() && !display[code] {
			continue
		}
		row := domain.BalanceRow{
			CurrencyCode: code,
			NetBalance:   balance,
			Converted:    make([]domain.ConvertedAmount, 0, len(displayCurrencies)),
		}
		for _, target := range displayCurrencies {
			row.Converted = append(row.Converted, domain.ConvertedAmount{
				CurrencyCode: target,
				Amount:       domain.Convert(balance, code, target, table),
			})
		}
		rows = append(rows, row)
	}
	return rows
}
