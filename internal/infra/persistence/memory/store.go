// Package memory provides an in-memory quadrature table store used for tests
// and ephemeral environments.
package memory

import (
	"context"
	"sync"

	"spectralcore/internal/quadrature"
)

// Compile-time contract assertion.
var _ quadrature.TableStore = (*Store)(nil)

// Store keeps quadrature tables in a process-local map.
type Store struct {
	mu     sync.RWMutex
	tables map[string]quadrature.Table
}

// NewStore constructs an empty in-memory table store.
func NewStore() *Store {
	return &Store{tables: make(map[string]quadrature.Table)}
}

// Load returns the stored table for (n, a, b) if present.
func (s *Store) Load(_ context.Context, n int, a, b float64) (quadrature.Table, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[quadrature.Table{N: n, A: a, B: b}.Key()]
	if !ok {
		return quadrature.Table{}, false, nil
	}
	return copyTable(t), true, nil
}

// Save stores a table, replacing any prior entry for the same rule.
func (s *Store) Save(_ context.Context, t quadrature.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.Key()] = copyTable(t)
	return nil
}

// Len reports the number of stored tables.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

func copyTable(t quadrature.Table) quadrature.Table {
	out := t
	out.Nodes = append([]float64(nil), t.Nodes...)
	out.Weights = append([]float64(nil), t.Weights...)
	return out
}
