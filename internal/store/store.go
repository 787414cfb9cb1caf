// Package store implements the persistent-store contract the SQL binder
// relies on: execute a mutation and return the affected-row count, or
// fetch the first column of the first row of a query. No schema is
// imposed here; bot authors define their own tables out-of-band.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	// lib/pq registers the "postgres" driver used by database/sql.
	_ "github.com/lib/pq"
)

// Store is the contract the SQL binder consults. Implementations never
// need to swallow errors themselves; the binder does that so the
// DSL-visible sentinels stay in one place.
type Store interface {
	Execute(ctx context.Context, query string, args []any) (int64, error)
	FetchScalar(ctx context.Context, query string, args []any) (any, error)
	Close() error
}

// PostgresStore wraps *sql.DB opened against a Postgres DSN.
type PostgresStore struct {
	db *sql.DB
}

// NewStore opens a connection pool against connString and verifies it
// with a ping.
func NewStore(connString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewStoreFromDB wraps an already-opened *sql.DB, used by tests that
// construct their handle via sqlmock.
func NewStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Execute(ctx context.Context, query string, args []any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("execute failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) FetchScalar(ctx context.Context, query string, args []any) (any, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	var v any
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch scalar failed: %w", err)
	}
	return v, nil
}

// InitSchema executes the DDL at path against the store, for standing up
// a scratch database.
func InitSchema(ctx context.Context, s *PostgresStore, path string) error {
	ddl, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading schema file: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
