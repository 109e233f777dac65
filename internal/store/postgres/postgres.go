// Package postgres implements the document store on PostgreSQL. Documents
// are JSONB rows; fields written as ServerTimestamp resolve to the row's
// server_time column, assigned by the database clock on insert.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/MrSnakeDoc/comments/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store implements store.Client backed by a PostgreSQL database.
type Store struct {
	db *sql.DB
}

var _ store.Client = (*Store)(nil)

// New opens a connection to the database at databaseURL, configures the
// pool and applies pending migrations.
func New(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an already migrated database handle.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (s *Store) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	return queryAdd(ctx, s.db, collection, fields)
}

func (s *Store) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	return queryFind(ctx, s.db, q)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
