// Package postgres provides a Postgres-backed quadrature table store that
// mirrors the SQLite semantics for shared multi-host deployments.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"spectralcore/internal/quadrature"
)

// Compile-time contract assertion.
var _ quadrature.TableStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/spectralcore?sslmode=disable"
)

// Store persists quadrature tables to a single Postgres table as JSONB
// payloads keyed by (n, a, b).
type Store struct {
	db *sql.DB
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to a local default) and ensures the schema exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS quadrature_tables (
		key TEXT PRIMARY KEY,
		n INTEGER NOT NULL,
		a DOUBLE PRECISION NOT NULL,
		b DOUBLE PRECISION NOT NULL,
		payload JSONB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create quadrature table: %w", err)
	}
	return &Store{db: db}, nil
}

// Load fetches the stored rule for (n, a, b) if present.
func (s *Store) Load(ctx context.Context, n int, a, b float64) (quadrature.Table, bool, error) {
	key := quadrature.Table{N: n, A: a, B: b}.Key()
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM quadrature_tables WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return quadrature.Table{}, false, nil
	}
	if err != nil {
		return quadrature.Table{}, false, fmt.Errorf("select quadrature table: %w", err)
	}
	var t quadrature.Table
	if err := json.Unmarshal(payload, &t); err != nil {
		return quadrature.Table{}, false, fmt.Errorf("decode quadrature table %s: %w", key, err)
	}
	return t, true, nil
}

// Save upserts a rule payload.
func (s *Store) Save(ctx context.Context, t quadrature.Table) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode quadrature table: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quadrature_tables (key, n, a, b, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload`,
		t.Key(), t.N, t.A, t.B, payload)
	if err != nil {
		return fmt.Errorf("save quadrature table: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
