package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

const (
	sqliteDateLayout = "2006-01-02"
	sqliteTimeLayout = time.RFC3339Nano
)

// sqliteTripRepo is the SQLite implementation of TripRepo.
// Dates are stored as "2006-01-02" text, timestamps as RFC 3339 text, and
// destinations, the budget and activities as JSON text.
type sqliteTripRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteTripRepo constructs a TripRepo backed by a database/sql handle
// opened with the modernc.org/sqlite driver.
func NewSQLiteTripRepo(db *sql.DB) TripRepo {
	return &sqliteTripRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *sqliteTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (id, name, start_date, end_date, destinations, notes, budget, activities, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	trip = cloneTrip(trip)
	trip.ID = uuid.New()
	trip.CreatedAt = r.now()
	trip.UpdatedAt = trip.CreatedAt

	cols, err := encodeCollections(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	_, err = r.db.ExecContext(ctx, q,
		trip.ID.String(), trip.Name,
		trip.StartDate.Format(sqliteDateLayout), trip.EndDate.Format(sqliteDateLayout),
		cols.destinations, trip.Notes, cols.budget, cols.activities,
		trip.CreatedAt.Format(sqliteTimeLayout), trip.UpdatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return trip, nil
}

func (r *sqliteTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`

	t, err := scanSQLiteTrip(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return t, nil
}

func (r *sqliteTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date DESC, created_at DESC`

	trips, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

func (r *sqliteTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date DESC, created_at DESC LIMIT ? OFFSET ?`

	trips, err := r.query(ctx, q, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}
	return trips, total, nil
}

func (r *sqliteTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name = ?, start_date = ?, end_date = ?, destinations = ?, notes = ?, budget = ?, updated_at = ?
		WHERE id = ?`

	cols, err := encodeCollections(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, q,
		trip.Name,
		trip.StartDate.Format(sqliteDateLayout), trip.EndDate.Format(sqliteDateLayout),
		cols.destinations, trip.Notes, cols.budget, r.now().Format(sqliteTimeLayout),
		trip.ID.String(),
	)
	if err := affectedOne(res, err); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return r.GetByID(ctx, trip.ID)
}

func (r *sqliteTripRepo) UpdateActivities(ctx context.Context, id uuid.UUID, activities []domain.Activity) error {
	const q = `UPDATE trips SET activities = ?, updated_at = ? WHERE id = ?`

	acts, err := encodeJSON(nonNil(activities))
	if err != nil {
		return fmt.Errorf("repo.TripRepo.UpdateActivities: %w", err)
	}

	res, err := r.db.ExecContext(ctx, q, acts, r.now().Format(sqliteTimeLayout), id.String())
	if err := affectedOne(res, err); err != nil {
		return fmt.Errorf("repo.TripRepo.UpdateActivities: %w", err)
	}
	return nil
}

func (r *sqliteTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id.String())
	if err := affectedOne(res, err); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

func (r *sqliteTripRepo) query(ctx context.Context, q string, args ...any) ([]domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanSQLiteTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// affectedOne turns an Exec result that touched no rows into domain.ErrNotFound.
func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// jsonColumns holds the JSON text written to the collection columns.
type jsonColumns struct {
	destinations, budget, activities string
}

func encodeCollections(t domain.Trip) (jsonColumns, error) {
	var (
		c   jsonColumns
		err error
	)
	if c.destinations, err = encodeJSON(nonNil(t.Destinations)); err != nil {
		return jsonColumns{}, err
	}
	if c.budget, err = encodeJSON(t.Budget.NonNil()); err != nil {
		return jsonColumns{}, err
	}
	if c.activities, err = encodeJSON(nonNil(t.Activities)); err != nil {
		return jsonColumns{}, err
	}
	return c, nil
}

func scanSQLiteTrip(s scanner) (domain.Trip, error) {
	var (
		t                    domain.Trip
		id, start, end       string
		dests, budget, acts  string
		createdAt, updatedAt string
	)

	err := s.Scan(&id, &t.Name, &start, &end, &dests, &t.Notes, &budget, &acts, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if t.ID, err = uuid.Parse(id); err != nil {
		return domain.Trip{}, fmt.Errorf("parse id: %w", err)
	}
	if t.StartDate, err = time.Parse(sqliteDateLayout, start); err != nil {
		return domain.Trip{}, fmt.Errorf("parse start_date: %w", err)
	}
	if t.EndDate, err = time.Parse(sqliteDateLayout, end); err != nil {
		return domain.Trip{}, fmt.Errorf("parse end_date: %w", err)
	}
	if t.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return domain.Trip{}, fmt.Errorf("parse created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(sqliteTimeLayout, updatedAt); err != nil {
		return domain.Trip{}, fmt.Errorf("parse updated_at: %w", err)
	}
	if err := decodeJSON(dests, &t.Destinations); err != nil {
		return domain.Trip{}, err
	}
	if err := decodeJSON(budget, &t.Budget); err != nil {
		return domain.Trip{}, err
	}
	if err := decodeJSON(acts, &t.Activities); err != nil {
		return domain.Trip{}, err
	}

	return cloneTrip(t), nil
}
