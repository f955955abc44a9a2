package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trip_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/trip_ledger_app/internal/models"
	"github.com/SscSPs/trip_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade using pgxpool.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, trip_id, seq, transaction_date, description, amount, currency_code, transaction_type,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.TripID, &m.Seq, &m.TransactionDate, &m.Description, &m.Amount,
		&m.CurrencyCode, &m.TransactionType,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts a new transaction at the end of the trip's ledger.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO trip_transactions (
			transaction_id, trip_id, transaction_date, description, amount, currency_code, transaction_type,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.TripID, m.TransactionDate, m.Description, m.Amount, m.CurrencyCode, m.TransactionType,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return &apperrors.DuplicateTransactionIDError{TransactionID: m.TransactionID}
		}
		return apperrors.NewAppError(500, "failed to save transaction", err)
	}
	return nil
}

// UpdateTransaction replaces the editable fields of a transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE trip_transactions
		SET transaction_date = $1, description = $2, amount = $3, currency_code = $4, transaction_type = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE trip_id = $8 AND transaction_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionDate, m.Description, m.Amount, m.CurrencyCode, m.TransactionType,
		m.LastUpdatedAt, m.LastUpdatedBy, m.TripID, m.TransactionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found: " + m.TransactionID)
	}
	return nil
}

// FindTransactionByID retrieves a single transaction of a trip.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, tripID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM trip_transactions
		WHERE trip_id = $1 AND transaction_id = $2;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, tripID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction not found: " + transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction", err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByTrip retrieves every transaction of a trip in insertion order.
func (r *PgxTransactionRepository) ListTransactionsByTrip(ctx context.Context, tripID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM trip_transactions
		WHERE trip_id = $1
		ORDER BY seq;`
	rows, err := r.Pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transactions", err)
	}
	return mapping.ToDomainTransactions(ms), nil
}

// DeleteTransaction removes one transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, tripID, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM trip_transactions WHERE trip_id = $1 AND transaction_id = $2;`, tripID, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found: " + transactionID)
	}
	return nil
}

// DeleteTransactionsByTrip removes every transaction of a trip.
func (r *PgxTransactionRepository) DeleteTransactionsByTrip(ctx context.Context, tripID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM trip_transactions WHERE trip_id = $1;`, tripID); err != nil {
		return apperrors.NewAppError(500, "failed to reset trip ledger", err)
	}
	return nil
}
