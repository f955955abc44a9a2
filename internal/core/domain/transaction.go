package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of trip transaction categories.
type TransactionType string

const (
	Revenue       TransactionType = "REVENUE"
	ClientCustody TransactionType = "CLIENT_CUSTODY"
	Expense       TransactionType = "EXPENSE"
	OwnerCustody  TransactionType = "OWNER_CUSTODY"
	DriverFee     TransactionType = "DRIVER_FEE"
)

// TransactionTypes returns every transaction type in display order.
func TransactionTypes() []TransactionType {
	return []TransactionType{Revenue, ClientCustody, Expense, OwnerCustody, DriverFee}
}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Revenue, ClientCustody, Expense, OwnerCustody, DriverFee:
		return true
	}
	return false
}

// Bucket is one of the four financial categories every transaction falls into.
type Bucket string

const (
	BucketIncomeAndClientCustody Bucket = "INCOME_AND_CLIENT_CUSTODY"
	BucketExpense                Bucket = "EXPENSE"
	BucketOwnerCustody           Bucket = "OWNER_CUSTODY"
	BucketDriverFee              Bucket = "DRIVER_FEE"
)

// Buckets returns the buckets in report order.
func Buckets() []Bucket {
	return []Bucket{BucketIncomeAndClientCustody, BucketExpense, BucketOwnerCustody, BucketDriverFee}
}

// Direction tells whether a bucket adds to or draws from cash on hand.
type Direction int

const (
	Inflow  Direction = 1
	Outflow Direction = -1
)

func (d Direction) String() string {
	if d == Inflow {
		return "INFLOW"
	}
	return "OUTFLOW"
}

// Classify maps a transaction type to its bucket.
// Callers must pass a validated type; anything else panics.
func Classify(t TransactionType) Bucket {
	switch t {
	case Revenue, ClientCustody:
		return BucketIncomeAndClientCustody
	case Expense:
		return BucketExpense
	case OwnerCustody:
		return BucketOwnerCustody
	case DriverFee:
		return BucketDriverFee
	}
	panic(fmt.Sprintf("unclassifiable transaction type '%s'", t))
}

// DirectionOf returns the balance direction of a bucket.
// Owner custody is cash received during the trip, so it counts as an inflow on hand.
func DirectionOf(b Bucket) Direction {
	switch b {
	case BucketIncomeAndClientCustody, BucketOwnerCustody:
		return Inflow
	default:
		return Outflow
	}
}

// TransactionTypeInfo is display metadata for a transaction type.
type TransactionTypeInfo struct {
	Type      TransactionType `json:"type"`
	Label     string          `json:"label"`
	Bucket    Bucket          `json:"bucket"`
	Direction string          `json:"direction"`
}

var transactionTypeLabels = map[TransactionType]string{
	Revenue:       "Trip revenue",
	ClientCustody: "Client custody",
	Expense:       "Expense",
	OwnerCustody:  "Owner custody",
	DriverFee:     "Driver fee",
}

// DescribeTransactionTypes returns display metadata for every type.
func DescribeTransactionTypes() []TransactionTypeInfo {
	out := make([]TransactionTypeInfo, 0, len(transactionTypeLabels))
	for _, t := range TransactionTypes() {
		b := Classify(t)
		out = append(out, TransactionTypeInfo{
			Type:      t,
			Label:     transactionTypeLabels[t],
			Bucket:    b,
			Direction: DirectionOf(b).String(),
		})
	}
	return out
}

// Transaction is a single trip money movement. Amount is always positive;
// its direction comes from Type.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	TripID        string          `json:"tripID"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  CurrencyCode    `json:"currencyCode"`
	Type          TransactionType `json:"type"`
	AuditFields
}

// Bucket returns the bucket the transaction classifies into.
func (t Transaction) Bucket() Bucket { return Classify(t.Type) }

// SignedAmount returns the amount signed by its bucket direction.
func (t Transaction) SignedAmount() decimal.Decimal {
	if DirectionOf(t.Bucket()) == Outflow {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the structural invariants of a transaction.
func (t Transaction) Validate(registry *CurrencyRegistry) error {
	if t.TransactionID == "" {
		return apperrors.NewValidationError("transaction ID is required")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrValidation, t.Amount.String())
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, t.Type)
	}
	return registry.Validate(t.CurrencyCode)
}
