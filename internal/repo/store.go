package repo

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/trip-planner/migrations"
)

// Driver names a storage backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverMemory   Driver = "memory"
)

// ParseDriver validates a configured driver name.
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(s); d {
	case DriverPostgres, DriverSQLite, DriverMemory:
		return d, nil
	}
	return "", fmt.Errorf("repo.ParseDriver: unknown storage driver %q", s)
}

// Store bundles the TripRepo for the selected backend with the handles
// needed to migrate, ping and close it.
type Store struct {
	Trips TripRepo

	driver Driver
	pool   *pgxpool.Pool
	sqlDB  *sql.DB
}

// Open connects to the backend named by driver. dsn is the Postgres
// connection string or the SQLite file path; it is ignored for memory.
// Postgres connectivity is verified with a ping before returning.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	switch driver {
	case DriverPostgres:
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("repo.Open: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("repo.Open: ping: %w", err)
		}
		return &Store{
			Trips:  NewTripRepo(pool),
			driver: driver,
			pool:   pool,
			sqlDB:  stdlib.OpenDBFromPool(pool),
		}, nil

	case DriverSQLite:
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("repo.Open: create data directory: %w", err)
			}
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("repo.Open: open sqlite: %w", err)
		}
		// A single connection serializes writers, which SQLite requires anyway.
		db.SetMaxOpenConns(1)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("repo.Open: ping: %w", err)
		}
		return &Store{Trips: NewSQLiteTripRepo(db), driver: driver, sqlDB: db}, nil

	case DriverMemory:
		return &Store{Trips: NewMemoryTripRepo(), driver: driver}, nil
	}
	return nil, fmt.Errorf("repo.Open: unknown storage driver %q", driver)
}

// Driver reports which backend the store uses.
func (s *Store) Driver() Driver { return s.driver }

// Ping checks that the backend is reachable. The memory backend always is.
func (s *Store) Ping(ctx context.Context) error {
	switch {
	case s.pool != nil:
		return s.pool.Ping(ctx)
	case s.sqlDB != nil:
		return s.sqlDB.PingContext(ctx)
	}
	return nil
}

// Migrations returns a goose provider for the store's backend. The memory
// backend has no schema and returns (nil, nil).
func (s *Store) Migrations() (*goose.Provider, error) {
	var (
		dialect goose.Dialect
		fsys    fs.FS
	)
	switch s.driver {
	case DriverPostgres:
		dialect, fsys = goose.DialectPostgres, migrations.Postgres()
	case DriverSQLite:
		dialect, fsys = goose.DialectSQLite3, migrations.SQLite()
	default:
		return nil, nil
	}

	provider, err := goose.NewProvider(dialect, s.sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("repo.Store.Migrations: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration and returns how many ran.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	provider, err := s.Migrations()
	if err != nil || provider == nil {
		return 0, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.Store.Migrate: %w", err)
	}
	return len(results), nil
}

// Close releases the backend's connections.
func (s *Store) Close() {
	if s.sqlDB != nil {
		s.sqlDB.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
