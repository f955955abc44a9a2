// Package memory keeps trips, transactions and rate snapshots in process memory.
// It is used when no database URL is configured and in tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trip_ledger_app/internal/core/ports/repositories"
)

// Store implements every repository port on top of maps guarded by one lock.
type Store struct {
	mu           sync.RWMutex
	trips        map[string]domain.Trip
	tripOrder    []string
	transactions map[string][]domain.Transaction
	snapshots    []domain.RateSnapshot
}

var (
	_ portsrepo.TripRepositoryFacade         = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade  = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		trips:        make(map[string]domain.Trip),
		transactions: make(map[string][]domain.Transaction),
	}
}

// NewRepositoryProvider wires a fresh in-memory store into every repository slot.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		TripRepo:         s,
		TransactionRepo:  s,
		ExchangeRateRepo: s,
	}
}

// SaveTrip inserts a new trip.
func (s *Store) SaveTrip(ctx context.Context, trip domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.trips[trip.TripID]; exists {
		return apperrors.NewDuplicateError("trip with ID '" + trip.TripID + "' already exists")
	}
	s.trips[trip.TripID] = trip
	s.tripOrder = append(s.tripOrder, trip.TripID)
	return nil
}

// FindTripByID retrieves a trip by its ID.
func (s *Store) FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trip, ok := s.trips[tripID]
	if !ok {
		return nil, apperrors.NewNotFoundError("trip not found: " + tripID)
	}
	return &trip, nil
}

// ListTrips retrieves all trips, newest first.
func (s *Store) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trips := make([]domain.Trip, 0, len(s.tripOrder))
	for i := len(s.tripOrder) - 1; i >= 0; i-- {
		trips = append(trips, s.trips[s.tripOrder[i]])
	}
	return trips, nil
}

// DeleteTrip removes a trip together with its transactions.
func (s *Store) DeleteTrip(ctx context.Context, tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[tripID]; !ok {
		return apperrors.NewNotFoundError("trip not found: " + tripID)
	}
	delete(s.trips, tripID)
	delete(s.transactions, tripID)
	s.tripOrder = slices.DeleteFunc(s.tripOrder, func(id string) bool { return id == tripID })
	return nil
}

// SaveTransaction appends a transaction to its trip's ledger.
func (s *Store) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[txn.TripID]; !ok {
		return apperrors.NewNotFoundError("trip not found: " + txn.TripID)
	}
	if s.indexOf(txn.TripID, txn.TransactionID) >= 0 {
		return &apperrors.DuplicateTransactionIDError{TransactionID: txn.TransactionID}
	}
	s.transactions[txn.TripID] = append(s.transactions[txn.TripID], txn)
	return nil
}

// UpdateTransaction replaces a stored transaction in place.
func (s *Store) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(txn.TripID, txn.TransactionID)
	if i < 0 {
		return apperrors.NewNotFoundError("transaction not found: " + txn.TransactionID)
	}
	s.transactions[txn.TripID][i] = txn
	return nil
}

// FindTransactionByID retrieves a single transaction of a trip.
func (s *Store) FindTransactionByID(ctx context.Context, tripID, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(tripID, transactionID)
	if i < 0 {
		return nil, apperrors.NewNotFoundError("transaction not found: " + transactionID)
	}
	txn := s.transactions[tripID][i]
	return &txn, nil
}

// ListTransactionsByTrip retrieves every transaction of a trip in insertion order.
func (s *Store) ListTransactionsByTrip(ctx context.Context, tripID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transactions[tripID]), nil
}

// DeleteTransaction removes one transaction.
func (s *Store) DeleteTransaction(ctx context.Context, tripID, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(tripID, transactionID)
	if i < 0 {
		return apperrors.NewNotFoundError("transaction not found: " + transactionID)
	}
	s.transactions[tripID] = slices.Delete(s.transactions[tripID], i, i+1)
	return nil
}

// DeleteTransactionsByTrip removes every transaction of a trip.
func (s *Store) DeleteTransactionsByTrip(ctx context.Context, tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transactions, tripID)
	return nil
}

func (s *Store) indexOf(tripID, transactionID string) int {
	return slices.IndexFunc(s.transactions[tripID], func(t domain.Transaction) bool {
		return t.TransactionID == transactionID
	})
}

// SaveRateSnapshot stores a copy of the snapshot.
func (s *Store) SaveRateSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot.Rates = maps.Clone(snapshot.Rates)
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

// FindLatestRateSnapshot retrieves the most recently effective snapshot.
func (s *Store) FindLatestRateSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	snapshots, _ := s.ListRateSnapshots(ctx, 1)
	if len(snapshots) == 0 {
		return nil, apperrors.NewNotFoundError("no exchange rate snapshot stored")
	}
	return &snapshots[0], nil
}

// ListRateSnapshots retrieves up to limit snapshots, newest first.
// Snapshots with the same effective time are ordered by most recent insertion.
func (s *Store) ListRateSnapshots(ctx context.Context, limit int) ([]domain.RateSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := slices.Clone(s.snapshots)
	slices.Reverse(sorted)
	slices.SortStableFunc(sorted, func(a, b domain.RateSnapshot) int {
		return b.EffectiveAt.Compare(a.EffectiveAt)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	for i := range sorted {
		sorted[i].Rates = maps.Clone(sorted[i].Rates)
	}
	return sorted, nil
}
