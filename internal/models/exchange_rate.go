package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is the header row of a stored set of exchange rates.
type RateSnapshot struct {
	SnapshotID    string    `json:"snapshotID"`    // Primary Key (e.g., UUID)
	PivotCurrency string    `json:"pivotCurrency"` // Not Null
	Source        string    `json:"source"`        // MANUAL, FETCHED or CONFIG
	EffectiveAt   time.Time `json:"effectiveAt"`
	AuditFields
}

// RateSnapshotEntry stores the pivot-relative rate of one currency within a snapshot.
type RateSnapshotEntry struct {
	SnapshotID   string          `json:"snapshotID"`   // FK -> RateSnapshot.snapshotID
	CurrencyCode string          `json:"currencyCode"` // Not Null
	Rate         decimal.Decimal `json:"rate"`         // Precise decimal type
}
