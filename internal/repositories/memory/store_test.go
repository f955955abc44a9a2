package memory

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(tripID, id string) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		TripID:        tripID,
		Date:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(10),
		CurrencyCode:  "EGP",
		Type:          domain.Expense,
	}
}

func TestStore_Trips(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.SaveTrip(ctx, domain.Trip{TripID: "t1", Name: "Luxor"}))
	require.NoError(t, s.SaveTrip(ctx, domain.Trip{TripID: "t2", Name: "Aswan"}))
	assert.ErrorIs(t, s.SaveTrip(ctx, domain.Trip{TripID: "t1"}), apperrors.ErrDuplicate)

	trips, err := s.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "t2", trips[0].TripID)

	trip, err := s.FindTripByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Luxor", trip.Name)

	_, err = s.FindTripByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, s.SaveTransaction(ctx, txn("t1", "a")))
	require.NoError(t, s.DeleteTrip(ctx, "t1"))
	assert.ErrorIs(t, s.DeleteTrip(ctx, "t1"), apperrors.ErrNotFound)

	txns, err := s.ListTransactionsByTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestStore_Transactions(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SaveTrip(ctx, domain.Trip{TripID: "t1"}))

	assert.ErrorIs(t, s.SaveTransaction(ctx, txn("missing", "a")), apperrors.ErrNotFound)

	require.NoError(t, s.SaveTransaction(ctx, txn("t1", "a")))
	require.NoError(t, s.SaveTransaction(ctx, txn("t1", "b")))
	require.NoError(t, s.SaveTransaction(ctx, txn("t1", "c")))

	err := s.SaveTransaction(ctx, txn("t1", "b"))
	var dup *apperrors.DuplicateTransactionIDError
	assert.ErrorAs(t, err, &dup)

	updated := txn("t1", "b")
	updated.Amount = decimal.NewFromInt(99)
	require.NoError(t, s.UpdateTransaction(ctx, updated))
	got, err := s.FindTransactionByID(ctx, "t1", "b")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(99)))
	assert.ErrorIs(t, s.UpdateTransaction(ctx, txn("t1", "zz")), apperrors.ErrNotFound)

	require.NoError(t, s.DeleteTransaction(ctx, "t1", "a"))
	assert.ErrorIs(t, s.DeleteTransaction(ctx, "t1", "a"), apperrors.ErrNotFound)

	txns, err := s.ListTransactionsByTrip(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "b", txns[0].TransactionID)
	assert.Equal(t, "c", txns[1].TransactionID)

	require.NoError(t, s.DeleteTransactionsByTrip(ctx, "t1"))
	txns, err = s.ListTransactionsByTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestStore_RateSnapshots(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.FindLatestRateSnapshot(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rates := map[domain.CurrencyCode]decimal.Decimal{"USD": decimal.NewFromInt(48)}
	require.NoError(t, s.SaveRateSnapshot(ctx, domain.RateSnapshot{SnapshotID: "old", Pivot: "EGP", Rates: rates, EffectiveAt: day}))
	require.NoError(t, s.SaveRateSnapshot(ctx, domain.RateSnapshot{SnapshotID: "new", Pivot: "EGP", Rates: rates, EffectiveAt: day.Add(time.Hour)}))
	require.NoError(t, s.SaveRateSnapshot(ctx, domain.RateSnapshot{SnapshotID: "backdated", Pivot: "EGP", Rates: rates, EffectiveAt: day}))

	rates["USD"] = decimal.NewFromInt(1)

	latest, err := s.FindLatestRateSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", latest.SnapshotID)
	assert.True(t, latest.Rates["USD"].Equal(decimal.NewFromInt(48)))

	all, err := s.ListRateSnapshots(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "backdated", all[1].SnapshotID)
	assert.Equal(t, "old", all[2].SnapshotID)

	limited, err := s.ListRateSnapshots(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
