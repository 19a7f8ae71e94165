// Package sqlite provides a SQLite-backed quadrature table store so expensive
// Gauss-Jacobi builds survive process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"spectralcore/internal/quadrature"
)

// Compile-time contract assertion.
var _ quadrature.TableStore = (*Store)(nil)

// Store persists quadrature tables to a single SQLite table as JSON payloads
// keyed by (n, a, b).
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) a SQLite-backed table store at path.
// An empty path selects spectralcore.db in the working directory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "spectralcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS quadrature_tables (
		key TEXT PRIMARY KEY,
		n INTEGER NOT NULL,
		a REAL NOT NULL,
		b REAL NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create quadrature table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the backing database path.
func (s *Store) Path() string { return s.path }

// Load fetches the stored rule for (n, a, b) if present.
func (s *Store) Load(ctx context.Context, n int, a, b float64) (quadrature.Table, bool, error) {
	key := quadrature.Table{N: n, A: a, B: b}.Key()
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM quadrature_tables WHERE key = ?`, key).Scan(&payload)
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
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		t.Key(), t.N, t.A, t.B, payload)
	if err != nil {
		return fmt.Errorf("save quadrature table: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
