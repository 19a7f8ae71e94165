// Package quadrature builds Gauss-Jacobi quadrature grids and weights using
// the Golub-Welsch eigenvalue method. Tables are memoized per (n, a, b) for
// the process lifetime, with concurrent first-time builds collapsed through
// singleflight, and can be warmed from a persistent TableStore.
package quadrature

import (
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/singleflight"
	"gonum.org/v1/gonum/mat"

	"spectralcore/pkg/domain"
)

// Table is one computed Gauss-Jacobi rule: n abscissas in (-1, 1) ascending
// and the matching quadrature weights for the Jacobi weight (1-x)^a (1+x)^b.
type Table struct {
	N       int       `json:"n"`
	A       float64   `json:"a"`
	B       float64   `json:"b"`
	Nodes   []float64 `json:"nodes"`
	Weights []float64 `json:"weights"`
}

// Key returns the canonical identity of the rule.
func (t Table) Key() string { return tableKey(t.N, t.A, t.B) }

// TableStore persists computed quadrature tables across processes. Load
// reports whether a table was found; Save is idempotent.
type TableStore interface {
	Load(ctx context.Context, n int, a, b float64) (Table, bool, error)
	Save(ctx context.Context, table Table) error
}

// Stats is a snapshot of cache behavior. StoreErrors counts persistent-store
// failures on load or save; the store is a warm cache, so failures never fail
// the build, but a nonzero count flags a misconfigured store.
type Stats struct {
	Hits        uint64
	Misses      uint64
	StoreHits   uint64
	StoreErrors uint64
}

// Source computes and caches Gauss-Jacobi rules. It implements
// domain.QuadratureSource. The zero value is not usable; construct with New.
type Source struct {
	mu          sync.Mutex
	tables      map[string]Table
	hits        uint64
	misses      uint64
	storeHits   uint64
	storeErrors uint64

	group singleflight.Group
	store TableStore
}

var _ domain.QuadratureSource = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithStore attaches a persistent warm cache: lookups missing in memory are
// loaded from the store before being computed, and fresh builds are saved
// back best effort.
func WithStore(store TableStore) Option {
	return func(s *Source) { s.store = store }
}

// New constructs an empty quadrature source.
func New(opts ...Option) *Source {
	s := &Source{tables: make(map[string]Table)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildGrid returns the n Gauss-Jacobi abscissas for weight exponents (a, b),
// ascending in (-1, 1). The caller owns the returned slice.
func (s *Source) BuildGrid(n int, a, b float64) ([]float64, error) {
	t, err := s.table(n, a, b)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Nodes))
	copy(out, t.Nodes)
	return out, nil
}

// BuildWeights returns the n quadrature weights matching BuildGrid order.
func (s *Source) BuildWeights(n int, a, b float64) ([]float64, error) {
	t, err := s.table(n, a, b)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Weights))
	copy(out, t.Weights)
	return out, nil
}

// Stats returns current cache counters.
func (s *Source) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Hits: s.hits, Misses: s.misses, StoreHits: s.storeHits, StoreErrors: s.storeErrors}
}

func (s *Source) table(n int, a, b float64) (Table, error) {
	if n < 0 {
		return Table{}, fmt.Errorf("quadrature: negative rule size %d", n)
	}
	if a <= -1 || b <= -1 {
		return Table{}, fmt.Errorf("quadrature: weight exponents must exceed -1, got a=%g b=%g", a, b)
	}
	key := tableKey(n, a, b)
	s.mu.Lock()
	if t, ok := s.tables[key]; ok {
		s.hits++
		s.mu.Unlock()
		return t, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Another flight may have populated the cache between the unlocked
		// check and entering the group.
		s.mu.Lock()
		if t, ok := s.tables[key]; ok {
			s.hits++
			s.mu.Unlock()
			return t, nil
		}
		s.mu.Unlock()

		if s.store != nil {
			// A failed load falls through to a fresh build; the failure is
			// only recorded in the counters.
			t, ok, err := s.store.Load(context.Background(), n, a, b)
			if err != nil {
				s.recordStoreError()
			} else if ok {
				s.commit(key, t, true)
				return t, nil
			}
		}
		t, err := buildTable(n, a, b)
		if err != nil {
			return Table{}, err
		}
		s.commit(key, t, false)
		if s.store != nil {
			// Persistence is a warm cache, not a correctness dependency.
			if err := s.store.Save(context.Background(), t); err != nil {
				s.recordStoreError()
			}
		}
		return t, nil
	})
	if err != nil {
		return Table{}, err
	}
	return v.(Table), nil
}

func (s *Source) commit(key string, t Table, fromStore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[key]; !ok {
		s.tables[key] = t
	}
	if fromStore {
		s.storeHits++
	} else {
		s.misses++
	}
}

func (s *Source) recordStoreError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeErrors++
}

func tableKey(n int, a, b float64) string {
	return fmt.Sprintf("%d|%g|%g", n, a, b)
}

// buildTable computes one Gauss-Jacobi rule by the Golub-Welsch method: the
// abscissas are the eigenvalues of the symmetric tridiagonal Jacobi matrix of
// the three-term recurrence, and the weights follow from the first components
// of the eigenvectors scaled by the weight-function total mass.
func buildTable(n int, a, b float64) (Table, error) {
	t := Table{N: n, A: a, B: b, Nodes: []float64{}, Weights: []float64{}}
	if n == 0 {
		return t, nil
	}

	// Total mass of (1-x)^a (1+x)^b over [-1, 1].
	mu0 := math.Pow(2, a+b+1) * math.Gamma(a+1) * math.Gamma(b+1) / math.Gamma(a+b+2)

	if n == 1 {
		t.Nodes = []float64{(b - a) / (a + b + 2)}
		t.Weights = []float64{mu0}
		return t, nil
	}

	jm := mat.NewSymDense(n, nil)
	jm.SetSym(0, 0, (b-a)/(a+b+2))
	for k := 1; k < n; k++ {
		fk := float64(k)
		den := 2*fk + a + b
		jm.SetSym(k, k, (b*b-a*a)/(den*(den+2)))
		var beta2 float64
		if k == 1 {
			// The generic formula divides by (1+a+b), which vanishes for the
			// Chebyshev weight; the first off-diagonal entry has its own form.
			beta2 = 4 * (1 + a) * (1 + b) / ((2 + a + b) * (2 + a + b) * (3 + a + b))
		} else {
			beta2 = 4 * fk * (fk + a) * (fk + b) * (fk + a + b) / (den * den * (den + 1) * (den - 1))
		}
		jm.SetSym(k-1, k, math.Sqrt(beta2))
	}

	var eig mat.EigenSym
	if !eig.Factorize(jm, true) {
		return Table{}, fmt.Errorf("quadrature: eigen decomposition failed for n=%d a=%g b=%g", n, a, b)
	}
	nodes := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		v0 := vecs.At(0, i)
		weights[i] = mu0 * v0 * v0
	}
	t.Nodes = nodes
	t.Weights = weights
	return t, nil
}
