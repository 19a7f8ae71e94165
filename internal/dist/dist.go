// Package dist provides the reference distributor for the space and domain
// layer: a deterministic process topology with scale remediation and a block
// grid layout. Every process constructs it with identical arguments apart
// from the rank, so all global shape computations agree bit for bit.
package dist

import (
	"fmt"
	"math"

	"spectralcore/pkg/domain"
)

// Dist implements domain.Distributor for a fixed axis count and a 1-D
// process grid. The serial case is size 1.
type Dist struct {
	dim    int
	rank   int
	size   int
	consts []domain.Space
}

var _ domain.Distributor = (*Dist)(nil)

// Option configures a Dist.
type Option func(*Dist)

// WithProcess places the distributor at the given rank of a process grid of
// the given size. Defaults to the serial layout 0 of 1.
func WithProcess(rank, size int) Option {
	return func(d *Dist) {
		d.rank = rank
		d.size = size
	}
}

// New builds a distributor over dim global axes.
func New(dim int, opts ...Option) (*Dist, error) {
	if dim < 1 {
		return nil, fmt.Errorf("dist: dimension must be at least 1, got %d", dim)
	}
	d := &Dist{dim: dim, rank: 0, size: 1}
	for _, opt := range opts {
		opt(d)
	}
	if d.size < 1 || d.rank < 0 || d.rank >= d.size {
		return nil, fmt.Errorf("dist: invalid process placement %d of %d", d.rank, d.size)
	}
	// Constant spaces are built once and reused: domain registry identity is
	// keyed on these instances.
	d.consts = make([]domain.Space, dim)
	for axis := 0; axis < dim; axis++ {
		d.consts[axis] = domain.NewConstant(d, axis)
	}
	return d, nil
}

// Dim returns the total global axis count.
func (d *Dist) Dim() int { return d.dim }

// Rank returns this process's position in the process grid.
func (d *Dist) Rank() int { return d.rank }

// Size returns the process count.
func (d *Dist) Size() int { return d.size }

// ConstantSpaces returns the stable per-axis constant placeholders.
func (d *Dist) ConstantSpaces() []domain.Space {
	out := make([]domain.Space, len(d.consts))
	copy(out, d.consts)
	return out
}

// RemedyScales normalizes a scale argument into a per-axis tuple: nil selects
// all ones, a single entry is broadcast, and a full tuple is validated.
// Non-positive or non-finite entries are rejected.
func (d *Dist) RemedyScales(scales []float64) ([]float64, error) {
	out := make([]float64, d.dim)
	switch {
	case scales == nil:
		for i := range out {
			out[i] = 1
		}
		return out, nil
	case len(scales) == 1:
		if err := checkScale(scales[0]); err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = scales[0]
		}
		return out, nil
	case len(scales) == d.dim:
		for i, s := range scales {
			if err := checkScale(s); err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, &domain.InvalidScaleError{
			Reason: fmt.Sprintf("expected 1 or %d scale entries, got %d", d.dim, len(scales)),
		}
	}
}

func checkScale(s float64) error {
	if s <= 0 {
		return &domain.InvalidScaleError{Scale: s}
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return &domain.InvalidScaleError{Scale: s, Reason: "scale must be finite"}
	}
	return nil
}

// GridLayout returns the block decomposition of grid space for this process.
func (d *Dist) GridLayout() domain.GridLayout { return blockLayout{dist: d} }

// blockLayout splits axis 0 of the grid shape into near-equal contiguous
// blocks across the process grid and keeps every other axis whole. Ranks past
// the end of a short axis receive empty slices.
type blockLayout struct {
	dist *Dist
}

func (l blockLayout) Slices(dom *domain.Domain, scales []float64) ([]domain.AxisSlice, error) {
	shape, err := dom.GlobalGridShape(scales)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AxisSlice, len(shape))
	for axis, n := range shape {
		out[axis] = domain.AxisSlice{Start: 0, Stop: n}
	}
	if l.dist.size > 1 && len(shape) > 0 {
		n := shape[0]
		block := (n + l.dist.size - 1) / l.dist.size
		start := l.dist.rank * block
		stop := start + block
		if start > n {
			start = n
		}
		if stop > n {
			stop = n
		}
		out[0] = domain.AxisSlice{Start: start, Stop: stop}
	}
	return out, nil
}
