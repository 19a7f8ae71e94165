package domain

import "fmt"

// fakeDist is a deterministic in-package Distributor: serial by default, with
// an optional two-field block decomposition of axis 0 for local-grid tests.
type fakeDist struct {
	dim    int
	consts []Space
	rank   int
	procs  int
}

func newFakeDist(dim int) *fakeDist {
	d := &fakeDist{dim: dim, procs: 1}
	for axis := 0; axis < dim; axis++ {
		d.consts = append(d.consts, NewConstant(d, axis))
	}
	return d
}

func newFakeBlockDist(dim, rank, procs int) *fakeDist {
	d := newFakeDist(dim)
	d.rank = rank
	d.procs = procs
	return d
}

func (d *fakeDist) Dim() int { return d.dim }

func (d *fakeDist) ConstantSpaces() []Space {
	out := make([]Space, len(d.consts))
	copy(out, d.consts)
	return out
}

func (d *fakeDist) RemedyScales(scales []float64) ([]float64, error) {
	switch {
	case scales == nil:
		out := make([]float64, d.dim)
		for i := range out {
			out[i] = 1
		}
		return out, nil
	case len(scales) == 1:
		if scales[0] <= 0 {
			return nil, &InvalidScaleError{Scale: scales[0]}
		}
		out := make([]float64, d.dim)
		for i := range out {
			out[i] = scales[0]
		}
		return out, nil
	case len(scales) == d.dim:
		out := make([]float64, d.dim)
		for i, s := range scales {
			if s <= 0 {
				return nil, &InvalidScaleError{Scale: s}
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, &InvalidScaleError{Scale: 0, Reason: fmt.Sprintf("expected 1 or %d entries, got %d", d.dim, len(scales))}
	}
}

func (d *fakeDist) GridLayout() GridLayout { return fakeLayout{dist: d} }

// fakeLayout blocks axis 0 across procs and keeps every other axis whole.
type fakeLayout struct {
	dist *fakeDist
}

func (l fakeLayout) Slices(dom *Domain, scales []float64) ([]AxisSlice, error) {
	shape, err := dom.GlobalGridShape(scales)
	if err != nil {
		return nil, err
	}
	out := make([]AxisSlice, len(shape))
	for axis, n := range shape {
		out[axis] = AxisSlice{Start: 0, Stop: n}
	}
	if l.dist.procs > 1 {
		n := shape[0]
		block := (n + l.dist.procs - 1) / l.dist.procs
		start := l.dist.rank * block
		stop := start + block
		if stop > n {
			stop = n
		}
		out[0] = AxisSlice{Start: start, Stop: stop}
	}
	return out, nil
}

// fakeQuad is a deterministic QuadratureSource stand-in: midpoints of a
// uniform partition of (-1, 1) and equal weights. It counts builds so tests
// can assert memoization.
type fakeQuad struct {
	gridBuilds   int
	weightBuilds int
}

func (q *fakeQuad) BuildGrid(n int, a, b float64) ([]float64, error) {
	q.gridBuilds++
	out := make([]float64, n)
	for i := range out {
		out[i] = -1 + 2*(float64(i)+0.5)/float64(n)
	}
	return out, nil
}

func (q *fakeQuad) BuildWeights(n int, a, b float64) ([]float64, error) {
	q.weightBuilds++
	out := make([]float64, n)
	for i := range out {
		out[i] = 2 / float64(n)
	}
	return out, nil
}

func mustPeriodic(t interface{ Fatalf(string, ...any) }, dist Distributor, name string, size, axis int) *PeriodicInterval {
	s, err := NewPeriodicInterval(IntervalSpec{Name: name, Size: size, Bounds: Interval{Left: 0, Right: 2 * 3.141592653589793}, Dist: dist, Axis: axis})
	if err != nil {
		t.Fatalf("NewPeriodicInterval(%s): %v", name, err)
	}
	return s
}

func mustFinite(t interface{ Fatalf(string, ...any) }, dist Distributor, name string, size, axis int, a, b float64) *FiniteInterval {
	s, err := NewFiniteInterval(IntervalSpec{Name: name, Size: size, Bounds: Interval{Left: -1, Right: 1}, Dist: dist, Axis: axis}, a, b, &fakeQuad{})
	if err != nil {
		t.Fatalf("NewFiniteInterval(%s): %v", name, err)
	}
	return s
}
