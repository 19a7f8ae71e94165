package domain

import (
	"fmt"
	"sync"
)

// finiteNative is the native interval of the Jacobi family.
var finiteNative = Interval{Left: -1, Right: 1}

// FiniteInterval is an affine transformation of [-1, 1] under the Jacobi
// weight (1-x)^a (1+x)^b. Grids and quadrature weights come from a
// Gauss-Jacobi generator and are memoized per distinct grid size, since
// recomputation is expensive.
type FiniteInterval struct {
	intervalSpace
	a    float64
	b    float64
	quad QuadratureSource

	mu      sync.Mutex
	grids   map[string][]float64
	weights map[string][]float64
}

// NewFiniteInterval builds a Jacobi-weighted space with weight exponents
// (a, b) on the given physical bounds. The quadrature source supplies native
// Gauss-Jacobi abscissas and weights.
func NewFiniteInterval(spec IntervalSpec, a, b float64, quad QuadratureSource) (*FiniteInterval, error) {
	if quad == nil {
		return nil, &SpaceConfigError{Space: spec.Name, Reason: "quadrature source required"}
	}
	base, err := newIntervalSpace(spec, finiteNative, 1)
	if err != nil {
		return nil, err
	}
	return &FiniteInterval{
		intervalSpace: base,
		a:             a,
		b:             b,
		quad:          quad,
		grids:         make(map[string][]float64),
		weights:       make(map[string][]float64),
	}, nil
}

// A returns the (1-x) weight exponent.
func (s *FiniteInterval) A() float64 { return s.a }

// B returns the (1+x) weight exponent.
func (s *FiniteInterval) B() float64 { return s.b }

// GroupShape returns (1,).
func (s *FiniteInterval) GroupShape() []int { return []int{1} }

// GridShape returns the scaled grid point count.
func (s *FiniteInterval) GridShape(scales []float64) ([]int, error) {
	return s.gridShape(scales)
}

// Grids returns the Gauss-Jacobi grid in problem coordinates, memoized per
// distinct grid size. Callers receive a fresh copy each call so the cached
// table stays immutable.
func (s *FiniteInterval) Grids(scales []float64) ([][]float64, error) {
	shape, err := s.gridShape(scales)
	if err != nil {
		return nil, err
	}
	n := shape[0]
	key := fmt.Sprintf("%d", n)
	s.mu.Lock()
	cached, ok := s.grids[key]
	s.mu.Unlock()
	if !ok {
		native, err := s.quad.BuildGrid(n, s.a, s.b)
		if err != nil {
			return nil, err
		}
		cached = s.cov.ToProblemSlice(native)
		s.mu.Lock()
		// First writer wins so concurrent fills stay consistent.
		if prior, raced := s.grids[key]; raced {
			cached = prior
		} else {
			s.grids[key] = cached
		}
		s.mu.Unlock()
	}
	out := make([]float64, len(cached))
	copy(out, cached)
	return [][]float64{out}, nil
}

// Weights returns the Gauss-Jacobi quadrature weights for the scaled grid,
// in native normalization and grid order, memoized per distinct grid size.
func (s *FiniteInterval) Weights(scales []float64) ([]float64, error) {
	shape, err := s.gridShape(scales)
	if err != nil {
		return nil, err
	}
	n := shape[0]
	key := fmt.Sprintf("%d", n)
	s.mu.Lock()
	cached, ok := s.weights[key]
	s.mu.Unlock()
	if !ok {
		built, err := s.quad.BuildWeights(n, s.a, s.b)
		if err != nil {
			return nil, err
		}
		cached = built
		s.mu.Lock()
		if prior, raced := s.weights[key]; raced {
			cached = prior
		} else {
			s.weights[key] = cached
		}
		s.mu.Unlock()
	}
	out := make([]float64, len(cached))
	copy(out, cached)
	return out, nil
}

// LocalGrids restricts Grids to the process-local slab.
func (s *FiniteInterval) LocalGrids(scales []float64) ([]GridVector, error) {
	return localGrids(s, scales)
}

// GridBasis returns the unshifted Jacobi basis descriptor.
func (s *FiniteInterval) GridBasis() Basis { return s.Jacobi(0, 0) }

// Domain returns the one-space domain.
func (s *FiniteInterval) Domain() (*Domain, error) { return NewDomain([]Space{s}) }
