// Package testutil provides shared helpers for storage tests.
// Postgres helpers skip the calling test when TEST_DATABASE_URL is not set;
// SQLite helpers always run against a file in the test's temp directory.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers "sqlite" driver for database/sql

	"github.com/pkordes/trip-planner/migrations"
)

// PostgresDSNEnv names the variable that points the integration suites at a
// disposable Postgres database.
const PostgresDSNEnv = "TEST_DATABASE_URL"

// Dialect pairs a database/sql driver with its goose dialect and migration tree.
type Dialect struct {
	Name       string
	driverName string
	dialect    goose.Dialect
	fsys       fs.FS
}

var (
	Postgres = Dialect{Name: "postgres", driverName: "pgx", dialect: goose.DialectPostgres, fsys: migrations.Postgres()}
	SQLite   = Dialect{Name: "sqlite", driverName: "sqlite", dialect: goose.DialectSQLite3, fsys: migrations.SQLite()}
)

// Provider returns a goose provider for db using the dialect's migrations.
func (d Dialect) Provider(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(d.dialect, db, d.fsys)
	if err != nil {
		return nil, fmt.Errorf("testutil: %s goose provider: %w", d.Name, err)
	}
	return p, nil
}

// NewPool opens a *pgxpool.Pool against TEST_DATABASE_URL and closes it when
// the test and its subtests finish.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB opens an unmigrated *sql.DB for the dialect. Postgres uses
// TEST_DATABASE_URL and skips without it; SQLite gets a fresh file.
func NewSQLDB(t *testing.T, d Dialect) *sql.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "planner.db")
	if d.Name == Postgres.Name {
		dsn = requireDSN(t)
	}

	db, err := openSQL(d, dsn)
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	if d.Name == SQLite.Name {
		db.SetMaxOpenConns(1)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MustMigratePostgres applies every pending Postgres migration to dsn and
// panics on failure. It is meant for TestMain, where no *testing.T exists.
func MustMigratePostgres(dsn string) {
	db, err := openSQL(Postgres, dsn)
	if err != nil {
		panic("testutil.MustMigratePostgres: " + err.Error())
	}
	defer db.Close()

	p, err := Postgres.Provider(db)
	if err != nil {
		panic("testutil.MustMigratePostgres: " + err.Error())
	}
	if _, err := p.Up(context.Background()); err != nil {
		panic("testutil.MustMigratePostgres: up: " + err.Error())
	}
}

func openSQL(d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}
	return db, nil
}

// requireDSN returns TEST_DATABASE_URL, skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skip(PostgresDSNEnv + " not set; skipping integration test")
	}
	return dsn
}
