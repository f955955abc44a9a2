package models

// Trip is the persisted form of a trip. Each trip owns one ledger.
type Trip struct {
	TripID          string `json:"tripID"`          // Primary Key (e.g., UUID)
	Name            string `json:"name"`            // Not Null
	Description     string `json:"description"`     // Nullable
	DefaultCurrency string `json:"defaultCurrency"` // Currency code, Nullable
	AuditFields
}
