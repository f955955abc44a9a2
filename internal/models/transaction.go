package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single ledger entry of a trip.
// Note: Amount should use a precise decimal type like github.com/shopspring/decimal
type Transaction struct {
	TransactionID   string          `json:"transactionID"`   // Part of Primary Key together with TripID
	TripID          string          `json:"tripID"`          // FK -> Trip.tripID (Not Null)
	Seq             int64           `json:"seq"`             // Insertion order within the trip
	TransactionDate time.Time       `json:"transactionDate"` // Not Null
	Description     string          `json:"description"`     // Nullable
	Amount          decimal.Decimal `json:"amount"`          // Positive value; Precise decimal type
	CurrencyCode    string          `json:"currencyCode"`    // Not Null
	TransactionType string          `json:"transactionType"` // REVENUE, CLIENT_CUSTODY, EXPENSE, OWNER_CUSTODY or DRIVER_FEE
	AuditFields
}
