package domain

import (
	"fmt"
	"sort"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
)

// Trip groups the transactions of one journey.
type Trip struct {
	TripID          string       `json:"tripID"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	DefaultCurrency CurrencyCode `json:"defaultCurrency"`
	AuditFields
}

// TripLedger is the in-memory set of a trip's transactions.
// Every entry references a registered currency, has a positive amount and a unique ID.
// A TripLedger is not safe for concurrent mutation; callers serialize edits.
type TripLedger struct {
	registry     *CurrencyRegistry
	transactions []Transaction
	index        map[string]int
}

// NewTripLedger creates an empty ledger bound to registry.
func NewTripLedger(registry *CurrencyRegistry) *TripLedger {
	return &TripLedger{
		registry: registry,
		index:    make(map[string]int),
	}
}

// NewTripLedgerFrom builds a ledger from existing transactions, validating each one.
func NewTripLedgerFrom(registry *CurrencyRegistry, transactions []Transaction) (*TripLedger, error) {
	l := NewTripLedger(registry)
	for _, txn := range transactions {
		if err := l.Add(txn); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add inserts a new transaction.
func (l *TripLedger) Add(txn Transaction) error {
	if err := txn.Validate(l.registry); err != nil {
		return err
	}
	if _, exists := l.index[txn.TransactionID]; exists {
		return &apperrors.DuplicateTransactionIDError{TransactionID: txn.TransactionID}
	}
	l.index[txn.TransactionID] = len(l.transactions)
	l.transactions = append(l.transactions, txn)
	return nil
}

// Update replaces the transaction with the same ID, keeping its position.
func (l *TripLedger) Update(txn Transaction) error {
	pos, ok := l.index[txn.TransactionID]
	if !ok {
		return fmt.Errorf("%w: transaction '%s'", apperrors.ErrNotFound, txn.TransactionID)
	}
	if err := txn.Validate(l.registry); err != nil {
		return err
	}
	l.transactions[pos] = txn
	return nil
}

// Delete removes a transaction by ID.
func (l *TripLedger) Delete(transactionID string) error {
	pos, ok := l.index[transactionID]
	if !ok {
		return fmt.Errorf("%w: transaction '%s'", apperrors.ErrNotFound, transactionID)
	}
	l.transactions = append(l.transactions[:pos], l.transactions[pos+1:]...)
	delete(l.index, transactionID)
	for i := pos; i < len(l.transactions); i++ {
		l.index[l.transactions[i].TransactionID] = i
	}
	return nil
}

// Reset discards every transaction.
func (l *TripLedger) Reset() {
	l.transactions = nil
	l.index = make(map[string]int)
}

// Get returns the transaction with the given ID.
func (l *TripLedger) Get(transactionID string) (Transaction, bool) {
	pos, ok := l.index[transactionID]
	if !ok {
		return Transaction{}, false
	}
	return l.transactions[pos], true
}

// Len returns the number of transactions.
func (l *TripLedger) Len() int { return len(l.transactions) }

// Transactions returns a snapshot copy in insertion order.
func (l *TripLedger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// SortedByDate returns a snapshot ordered by date, newest first.
// Ties keep insertion order.
func (l *TripLedger) SortedByDate() []Transaction {
	out := l.Transactions()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
