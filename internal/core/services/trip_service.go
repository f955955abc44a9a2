package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trip_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trip_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/trip_ledger_app/internal/dto"
	"github.com/SscSPs/trip_ledger_app/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultTransactionPageSize = 50
	maxTransactionPageSize     = 200
)

// tripLocks serializes ledger mutations per trip.
type tripLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *tripLocks) lock(tripID string) func() {
	l.mu.Lock()
	m, ok := l.locks[tripID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[tripID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (l *tripLocks) forget(tripID string) {
	l.mu.Lock()
	delete(l.locks, tripID)
	l.mu.Unlock()
}

type tripService struct {
	BaseService
	registry *domain.CurrencyRegistry
	tripRepo portsrepo.TripRepositoryFacade
	txnRepo  portsrepo.TransactionRepositoryFacade
	locks    tripLocks
	now      func() time.Time
}

// TripServiceOption is a functional option for configuring the trip service
type TripServiceOption func(*tripService)

// WithTripClock overrides the time source used for audit fields.
func WithTripClock(now func() time.Time) TripServiceOption {
	return func(s *tripService) {
		s.now = now
	}
}

// NewTripService creates the service that owns trips and their ledgers.
func NewTripService(tripRepo portsrepo.TripRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, registry *domain.CurrencyRegistry, options ...TripServiceOption) portssvc.TripSvcFacade {
	svc := &tripService{
		registry: registry,
		tripRepo: tripRepo,
		txnRepo:  txnRepo,
		locks:    tripLocks{locks: make(map[string]*sync.Mutex)},
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TripSvcFacade = (*tripService)(nil)

func (s *tripService) audit(userID string) domain.AuditFields {
	now := s.now()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

func (s *tripService) CreateTrip(ctx context.Context, req dto.CreateTripRequest, userID string) (*domain.Trip, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("trip name is required")
	}

	var defaultCurrency domain.CurrencyCode
	if req.DefaultCurrency != "" {
		defaultCurrency = domain.NormalizeCurrencyCode(req.DefaultCurrency)
		if err := s.registry.Validate(defaultCurrency); err != nil {
			return nil, err
		}
	}

	trip := domain.Trip{
		TripID:          uuid.NewString(),
		Name:            name,
		Description:     strings.TrimSpace(req.Description),
		DefaultCurrency: defaultCurrency,
		AuditFields:     s.audit(userID),
	}
	if err := s.tripRepo.SaveTrip(ctx, trip); err != nil {
		s.LogError(ctx, err, "Failed to save trip", slog.String("trip_id", trip.TripID))
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	s.LogInfo(ctx, "Trip created", slog.String("trip_id", trip.TripID), slog.String("user_id", userID))
	return &trip, nil
}

func (s *tripService) GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	trip, err := s.tripRepo.FindTripByID(ctx, tripID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load trip", slog.String("trip_id", tripID))
		}
		return nil, err
	}
	return trip, nil
}

func (s *tripService) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.tripRepo.ListTrips(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list trips")
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

func (s *tripService) DeleteTrip(ctx context.Context, tripID string, userID string) error {
	unlock := s.locks.lock(tripID)
	defer unlock()

	if err := s.tripRepo.DeleteTrip(ctx, tripID); err != nil {
		return err
	}
	s.locks.forget(tripID)
	s.LogInfo(ctx, "Trip deleted", slog.String("trip_id", tripID), slog.String("user_id", userID))
	return nil
}

// loadLedger rebuilds the trip's ledger from storage. The trip must exist.
func (s *tripService) loadLedger(ctx context.Context, tripID string) (*domain.TripLedger, error) {
	txns, err := s.txnRepo.ListTransactionsByTrip(ctx, tripID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions", slog.String("trip_id", tripID))
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	ledger, err := domain.NewTripLedgerFrom(s.registry, txns)
	if err != nil {
		s.LogError(ctx, err, "Stored ledger failed validation", slog.String("trip_id", tripID))
		return nil, fmt.Errorf("stored ledger for trip %s is invalid: %w", tripID, err)
	}
	return ledger, nil
}

func (s *tripService) LoadLedger(ctx context.Context, tripID string) (*domain.TripLedger, error) {
	if _, err := s.GetTripByID(ctx, tripID); err != nil {
		return nil, err
	}
	return s.loadLedger(ctx, tripID)
}

func (s *tripService) AddTransaction(ctx context.Context, tripID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	unlock := s.locks.lock(tripID)
	defer unlock()

	ledger, err := s.LoadLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}

	txnID := strings.TrimSpace(req.TransactionID)
	if txnID == "" {
		txnID = uuid.NewString()
	}
	txn := domain.Transaction{
		TransactionID: txnID,
		TripID:        tripID,
		Date:          req.Date,
		Description:   strings.TrimSpace(req.Description),
		Amount:        req.Amount,
		CurrencyCode:  domain.NormalizeCurrencyCode(req.CurrencyCode),
		Type:          domain.TransactionType(strings.ToUpper(strings.TrimSpace(req.Type))),
		AuditFields:   s.audit(userID),
	}
	if err := ledger.Add(txn); err != nil {
		s.LogDebug(ctx, "Transaction rejected", slog.String("trip_id", tripID), slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("trip_id", tripID), slog.String("transaction_id", txnID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("trip_id", tripID),
		slog.String("transaction_id", txnID),
		slog.String("type", string(txn.Type)),
		slog.String("currency", string(txn.CurrencyCode)))
	return &txn, nil
}

func (s *tripService) UpdateTransaction(ctx context.Context, tripID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	unlock := s.locks.lock(tripID)
	defer unlock()

	ledger, err := s.LoadLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}
	txn, ok := ledger.Get(transactionID)
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction not found: " + transactionID)
	}

	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Description != nil {
		txn.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		txn.CurrencyCode = domain.NormalizeCurrencyCode(*req.CurrencyCode)
	}
	if req.Type != nil {
		txn.Type = domain.TransactionType(strings.ToUpper(strings.TrimSpace(*req.Type)))
	}
	txn.LastUpdatedAt = s.now()
	txn.LastUpdatedBy = userID

	if err := ledger.Update(txn); err != nil {
		return nil, err
	}
	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("trip_id", tripID), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("trip_id", tripID), slog.String("transaction_id", transactionID))
	return &txn, nil
}

func (s *tripService) DeleteTransaction(ctx context.Context, tripID, transactionID string, userID string) error {
	unlock := s.locks.lock(tripID)
	defer unlock()

	if _, err := s.GetTripByID(ctx, tripID); err != nil {
		return err
	}
	if err := s.txnRepo.DeleteTransaction(ctx, tripID, transactionID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Transaction deleted",
		slog.String("trip_id", tripID),
		slog.String("transaction_id", transactionID),
		slog.String("user_id", userID))
	return nil
}

func (s *tripService) ResetLedger(ctx context.Context, tripID string, userID string) error {
	unlock := s.locks.lock(tripID)
	defer unlock()

	if _, err := s.GetTripByID(ctx, tripID); err != nil {
		return err
	}
	if err := s.txnRepo.DeleteTransactionsByTrip(ctx, tripID); err != nil {
		s.LogError(ctx, err, "Failed to reset ledger", slog.String("trip_id", tripID))
		return fmt.Errorf("failed to reset ledger: %w", err)
	}
	s.LogInfo(ctx, "Ledger reset", slog.String("trip_id", tripID), slog.String("user_id", userID))
	return nil
}

func (s *tripService) GetTransaction(ctx context.Context, tripID, transactionID string) (*domain.Transaction, error) {
	if _, err := s.GetTripByID(ctx, tripID); err != nil {
		return nil, err
	}
	return s.txnRepo.FindTransactionByID(ctx, tripID, transactionID)
}

// ListTransactions returns one page of the ledger sorted by date, newest first.
// Transactions sharing a date keep their insertion order.
func (s *tripService) ListTransactions(ctx context.Context, tripID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	ledger, err := s.LoadLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}

	sorted := ledger.SortedByDate()
	start := 0
	if params.NextToken != nil && *params.NextToken != "" {
		date, lastID, err := pagination.DecodeCursor(*params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		start = cursorStart(sorted, date, lastID)
	}
	end := min(start+limit, len(sorted))
	page := sorted[start:end]

	resp := &dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(page)}
	if end < len(sorted) {
		last := page[len(page)-1]
		token := pagination.EncodeCursor(last.Date, last.TransactionID)
		resp.NextToken = &token
	}
	return resp, nil
}

// cursorStart finds the index just after the item the cursor points at. If
// that item has since been deleted, paging resumes at the first older date.
func cursorStart(sorted []domain.Transaction, date time.Time, lastID string) int {
	for i, txn := range sorted {
		if txn.TransactionID == lastID {
			return i + 1
		}
	}
	for i, txn := range sorted {
		if txn.Date.Before(date) {
			return i
		}
	}
	return len(sorted)
}
