package accounting

import "github.com/SscSPs/trip_ledger_app/internal/core/domain"

// ComputeWaterfall derives the running totals of trip profit or loss for one target currency.
//
//	grossInflow    = income and client custody + owner custody
//	afterExpenses  = grossInflow - expense
//	afterDriverFee = afterExpenses - driver fee
//	netResult      = afterDriverFee - owner custody
//
// Owner custody is cash available during the trip but it belongs to the owner,
// so it is added to the inflow and settled again at the end.
func ComputeWaterfall(results domain.BucketResults) domain.WaterfallResult {
	grossInflow := results.IncomeAndClientCustody.Total.Add(results.OwnerCustody.Total)
	afterExpenses := grossInflow.Sub(results.Expense.Total)
	afterDriverFee := afterExpenses.Sub(results.DriverFee.Total)
	netResult := afterDriverFee.Sub(results.OwnerCustody.Total)

	return domain.WaterfallResult{
		Target:         results.Target,
		GrossInflow:    grossInflow,
		AfterExpenses:  afterExpenses,
		AfterDriverFee: afterDriverFee,
		NetResult:      netResult,
	}
}
