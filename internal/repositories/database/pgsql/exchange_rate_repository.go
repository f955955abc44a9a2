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
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository stores rate snapshots in two tables: a header row
// per snapshot and one entry row per currency.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveRateSnapshot inserts the snapshot header and its entries in one transaction.
func (r *PgxExchangeRateRepository) SaveRateSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	header, entries := mapping.ToModelRateSnapshot(snapshot)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO rate_snapshots (
			snapshot_id, pivot_currency, source, effective_at,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		header.SnapshotID, header.PivotCurrency, header.Source, header.EffectiveAt,
		header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save rate snapshot", err)
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`INSERT INTO rate_snapshot_entries (snapshot_id, currency_code, rate) VALUES ($1, $2, $3);`,
			e.SnapshotID, e.CurrencyCode, e.Rate)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to save rate snapshot entries", err)
	}

	return r.Commit(ctx, tx)
}

// FindLatestRateSnapshot retrieves the most recently effective snapshot.
func (r *PgxExchangeRateRepository) FindLatestRateSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	snapshots, err := r.ListRateSnapshots(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, apperrors.NewNotFoundError("no exchange rate snapshot stored")
	}
	return &snapshots[0], nil
}

// ListRateSnapshots retrieves up to limit snapshots, newest first.
func (r *PgxExchangeRateRepository) ListRateSnapshots(ctx context.Context, limit int) ([]domain.RateSnapshot, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT snapshot_id, pivot_currency, source, effective_at,
			created_at, created_by, last_updated_at, last_updated_by
		FROM rate_snapshots
		ORDER BY effective_at DESC, created_at DESC
		LIMIT $1;`, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list rate snapshots", err)
	}
	var headers []models.RateSnapshot
	for rows.Next() {
		var h models.RateSnapshot
		if err := rows.Scan(
			&h.SnapshotID, &h.PivotCurrency, &h.Source, &h.EffectiveAt,
			&h.CreatedAt, &h.CreatedBy, &h.LastUpdatedAt, &h.LastUpdatedBy,
		); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan rate snapshot", err)
		}
		headers = append(headers, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating rate snapshots", err)
	}

	snapshots := make([]domain.RateSnapshot, 0, len(headers))
	for _, h := range headers {
		entries, err := r.findEntries(ctx, h.SnapshotID)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, mapping.ToDomainRateSnapshot(h, entries))
	}
	return snapshots, nil
}

func (r *PgxExchangeRateRepository) findEntries(ctx context.Context, snapshotID string) ([]models.RateSnapshotEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT snapshot_id, currency_code, rate
		FROM rate_snapshot_entries
		WHERE snapshot_id = $1;`, snapshotID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load rate snapshot entries", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.RateSnapshotEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to scan rate snapshot entries", err)
	}
	return entries, nil
}
