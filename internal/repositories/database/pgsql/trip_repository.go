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

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// PgxTripRepository implements portsrepo.TripRepositoryFacade using pgxpool.
type PgxTripRepository struct {
	BaseRepository
}

func newPgxTripRepository(pool *pgxpool.Pool) portsrepo.TripRepositoryFacade {
	return &PgxTripRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TripRepositoryFacade = (*PgxTripRepository)(nil)

// SaveTrip inserts a new trip.
func (r *PgxTripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	m := mapping.ToModelTrip(trip)
	query := `
		INSERT INTO trips (trip_id, name, description, default_currency, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TripID, m.Name, m.Description, m.DefaultCurrency,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.NewDuplicateError("trip with ID '" + m.TripID + "' already exists")
		}
		return apperrors.NewAppError(500, "failed to save trip", err)
	}
	return nil
}

// FindTripByID retrieves a trip by its ID.
func (r *PgxTripRepository) FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	query := `
		SELECT trip_id, name, description, default_currency, created_at, created_by, last_updated_at, last_updated_by
		FROM trips
		WHERE trip_id = $1;
	`
	var m models.Trip
	err := r.Pool.QueryRow(ctx, query, tripID).Scan(
		&m.TripID, &m.Name, &m.Description, &m.DefaultCurrency,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("trip not found: " + tripID)
		}
		return nil, apperrors.NewAppError(500, "failed to find trip", err)
	}
	trip := mapping.ToDomainTrip(m)
	return &trip, nil
}

// ListTrips retrieves all trips, newest first.
func (r *PgxTripRepository) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	query := `
		SELECT trip_id, name, description, default_currency, created_at, created_by, last_updated_at, last_updated_by
		FROM trips
		ORDER BY created_at DESC, trip_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list trips", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		var m models.Trip
		if err := rows.Scan(
			&m.TripID, &m.Name, &m.Description, &m.DefaultCurrency,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trip", err)
		}
		trips = append(trips, mapping.ToDomainTrip(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trips", err)
	}
	return trips, nil
}

// DeleteTrip removes a trip. Its transactions go with it through ON DELETE CASCADE.
func (r *PgxTripRepository) DeleteTrip(ctx context.Context, tripID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM trips WHERE trip_id = $1;`, tripID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete trip", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("trip not found: " + tripID)
	}
	return nil
}
