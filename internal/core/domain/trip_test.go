package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTxn(id string, amount string, currency domain.CurrencyCode, txnType domain.TransactionType, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		TripID:        "trip_1",
		Date:          date,
		Description:   "test " + id,
		Amount:        dec(amount),
		CurrencyCode:  currency,
		Type:          txnType,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		txnType   domain.TransactionType
		bucket    domain.Bucket
		direction domain.Direction
	}{
		{domain.Revenue, domain.BucketIncomeAndClientCustody, domain.Inflow},
		{domain.ClientCustody, domain.BucketIncomeAndClientCustody, domain.Inflow},
		{domain.Expense, domain.BucketExpense, domain.Outflow},
		{domain.OwnerCustody, domain.BucketOwnerCustody, domain.Inflow},
		{domain.DriverFee, domain.BucketDriverFee, domain.Outflow},
	}
	for _, tt := range tests {
		t.Run(string(tt.txnType), func(t *testing.T) {
			assert.True(t, tt.txnType.IsValid())
			assert.Equal(t, tt.bucket, domain.Classify(tt.txnType))
			assert.Equal(t, tt.direction, domain.DirectionOf(tt.bucket))
		})
	}

	assert.Len(t, domain.TransactionTypes(), 5)
	assert.Len(t, domain.Buckets(), 4)
	assert.False(t, domain.TransactionType("REFUND").IsValid())
	assert.Panics(t, func() { domain.Classify("REFUND") })
}

func TestDescribeTransactionTypes(t *testing.T) {
	infos := domain.DescribeTransactionTypes()
	require.Len(t, infos, 5)
	assert.Equal(t, domain.Revenue, infos[0].Type)
	assert.Equal(t, "Trip revenue", infos[0].Label)
	assert.Equal(t, "INFLOW", infos[0].Direction)
	assert.Equal(t, domain.BucketDriverFee, infos[4].Bucket)
	assert.Equal(t, "OUTFLOW", infos[4].Direction)
}

func TestTransaction_SignedAmount(t *testing.T) {
	now := time.Now()
	assert.True(t, newTxn("1", "10", "EGP", domain.Revenue, now).SignedAmount().Equal(dec("10")))
	assert.True(t, newTxn("2", "10", "EGP", domain.OwnerCustody, now).SignedAmount().Equal(dec("10")))
	assert.True(t, newTxn("3", "10", "EGP", domain.Expense, now).SignedAmount().Equal(dec("-10")))
	assert.True(t, newTxn("4", "10", "EGP", domain.DriverFee, now).SignedAmount().Equal(dec("-10")))
}

func TestTransaction_Validate(t *testing.T) {
	registry := testRegistry(t, "EGP", "USD")
	now := time.Now()

	tests := []struct {
		name    string
		txn     domain.Transaction
		wantErr error
		errMsg  string
	}{
		{name: "valid", txn: newTxn("t1", "12.5", "EGP", domain.Expense, now)},
		{name: "missing ID", txn: newTxn("", "12.5", "EGP", domain.Expense, now), wantErr: apperrors.ErrValidation, errMsg: "ID is required"},
		{name: "zero amount", txn: newTxn("t1", "0", "EGP", domain.Expense, now), wantErr: apperrors.ErrValidation, errMsg: "must be positive"},
		{name: "negative amount", txn: newTxn("t1", "-3", "EGP", domain.Expense, now), wantErr: apperrors.ErrValidation, errMsg: "must be positive"},
		{name: "unknown type", txn: newTxn("t1", "3", "EGP", "GIFT", now), wantErr: apperrors.ErrValidation, errMsg: "unknown transaction type"},
		{name: "unknown currency", txn: newTxn("t1", "3", "JPY", domain.Expense, now), wantErr: apperrors.ErrValidation, errMsg: "unknown currency code 'JPY'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate(registry)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTripLedger(t *testing.T) {
	registry := testRegistry(t, "EGP", "USD")
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	ledger := domain.NewTripLedger(registry)
	require.NoError(t, ledger.Add(newTxn("a", "100", "EGP", domain.Revenue, day)))
	require.NoError(t, ledger.Add(newTxn("b", "30", "USD", domain.Expense, day.Add(48*time.Hour))))
	require.NoError(t, ledger.Add(newTxn("c", "5", "USD", domain.DriverFee, day.Add(24*time.Hour))))
	assert.Equal(t, 3, ledger.Len())

	t.Run("duplicate ID", func(t *testing.T) {
		err := ledger.Add(newTxn("a", "1", "EGP", domain.Revenue, day))
		var dup *apperrors.DuplicateTransactionIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "a", dup.TransactionID)
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
		assert.Equal(t, 3, ledger.Len())
	})

	t.Run("unknown currency rejected at insertion", func(t *testing.T) {
		err := ledger.Add(newTxn("z", "1", "JPY", domain.Revenue, day))
		var unknown *apperrors.UnknownCurrencyError
		assert.ErrorAs(t, err, &unknown)
		assert.Equal(t, 3, ledger.Len())
	})

	t.Run("insertion order and date order", func(t *testing.T) {
		ids := func(txns []domain.Transaction) []string {
			out := make([]string, 0, len(txns))
			for _, txn := range txns {
				out = append(out, txn.TransactionID)
			}
			return out
		}
		assert.Equal(t, []string{"a", "b", "c"}, ids(ledger.Transactions()))
		assert.Equal(t, []string{"b", "c", "a"}, ids(ledger.SortedByDate()))
	})

	t.Run("update keeps ID and position", func(t *testing.T) {
		updated := newTxn("b", "45", "EGP", domain.Expense, day)
		require.NoError(t, ledger.Update(updated))
		got, ok := ledger.Get("b")
		require.True(t, ok)
		assert.True(t, got.Amount.Equal(dec("45")))
		assert.Equal(t, domain.CurrencyCode("EGP"), got.CurrencyCode)
		assert.Equal(t, "b", ledger.Transactions()[1].TransactionID)

		err := ledger.Update(newTxn("missing", "1", "EGP", domain.Expense, day))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		err = ledger.Update(newTxn("b", "0", "EGP", domain.Expense, day))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("snapshot is detached", func(t *testing.T) {
		snapshot := ledger.Transactions()
		snapshot[0].Amount = decimal.NewFromInt(999)
		got, _ := ledger.Get("a")
		assert.True(t, got.Amount.Equal(dec("100")))
	})

	t.Run("delete reindexes", func(t *testing.T) {
		require.NoError(t, ledger.Delete("a"))
		assert.ErrorIs(t, ledger.Delete("a"), apperrors.ErrNotFound)
		got, ok := ledger.Get("c")
		require.True(t, ok)
		assert.Equal(t, "c", got.TransactionID)
		require.NoError(t, ledger.Add(newTxn("a", "1", "EGP", domain.Revenue, day)))
		assert.Equal(t, 3, ledger.Len())
	})

	t.Run("reset", func(t *testing.T) {
		ledger.Reset()
		assert.Equal(t, 0, ledger.Len())
		assert.Empty(t, ledger.Transactions())
		require.NoError(t, ledger.Add(newTxn("a", "1", "EGP", domain.Revenue, day)))
	})
}

func TestNewTripLedgerFrom(t *testing.T) {
	registry := testRegistry(t, "EGP")
	day := time.Now()

	ledger, err := domain.NewTripLedgerFrom(registry, []domain.Transaction{
		newTxn("a", "1", "EGP", domain.Revenue, day),
		newTxn("b", "2", "EGP", domain.Expense, day),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, ledger.Len())

	_, err = domain.NewTripLedgerFrom(registry, []domain.Transaction{
		newTxn("a", "1", "EGP", domain.Revenue, day),
		newTxn("a", "2", "EGP", domain.Expense, day),
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
