package domain

import "math"

// Space is one computational axis (or tightly coupled axis group) with a
// spectral representation. All variants are immutable value objects after
// construction; every method is a pure function of the space and its
// arguments.
type Space interface {
	// Name returns the human-readable space name, possibly empty.
	Name() string
	// Dist returns the shared distributor the space is bound to.
	Dist() Distributor
	// Axes returns the global axis indices the space occupies, ascending.
	Axes() []int
	// Dim returns the number of axes the space occupies.
	Dim() int
	// IsConstant reports whether the space is a constant placeholder.
	IsConstant() bool
	// GroupShape returns the minimum coefficient granularity per axis.
	GroupShape() []int
	// Shape returns the coefficient-space shape per axis.
	Shape() []int
	// Dealias returns the dealias scale factor used for nonlinear terms.
	Dealias() float64
	// GridShape returns the scaled grid point count per occupied axis.
	GridShape(scales []float64) ([]int, error)
	// Grids returns the flat global problem-coordinate grid per occupied
	// axis. Pure in the scales: identical arguments yield identical values.
	Grids(scales []float64) ([][]float64, error)
	// LocalGrids restricts Grids to the slab owned by the current process
	// and positions each axis grid as a broadcastable vector.
	LocalGrids(scales []float64) ([]GridVector, error)
	// GridBasis returns the basis descriptor used for grid representations
	// of this space.
	GridBasis() Basis
	// Domain returns the one-space domain for standalone use. The result is
	// the shared registry instance.
	Domain() (*Domain, error)
}

// GridVector is a one-axis coordinate vector positioned inside the full
// domain shape: Shape has length Dist().Dim() with every entry 1 except the
// vector's own axis. Downstream elementwise arithmetic across axes of
// different sizes broadcasts these vectors without materializing the full
// N-dimensional grid.
type GridVector struct {
	Axis   int
	Shape  []int
	Values []float64
}

// checkShape validates that each axis's coefficient count is an exact
// multiple of the variant's group-shape entry.
func checkShape(name string, shape, group []int) error {
	for i := range shape {
		if shape[i]%group[i] != 0 {
			return &ShapeGroupMismatchError{Space: name, Size: shape[i], GroupShape: group[i]}
		}
	}
	return nil
}

// scaledCount is the shared grid-shape rule: nearest-integer rounding of
// scale times coefficient count, so dealias factors such as 3/2 stay exact
// on even sizes and stable on odd ones.
func scaledCount(scale float64, n int) int {
	return int(math.Round(scale * float64(n)))
}

// gridShape computes the scaled grid shape for a space occupying
// axes [axis, axis+dim) with the given coefficient shape.
func gridShape(dist Distributor, axis int, shape []int, scales []float64) ([]int, error) {
	remedied, err := dist.RemedyScales(scales)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(shape))
	for i, n := range shape {
		out[i] = scaledCount(remedied[axis+i], n)
	}
	return out, nil
}

// localGrids implements Space.LocalGrids in terms of the interface surface:
// slice the global grids by the distributor's per-process ranges, then
// reshape each slice as a broadcastable vector on its global axis.
func localGrids(s Space, scales []float64) ([]GridVector, error) {
	dist := s.Dist()
	remedied, err := dist.RemedyScales(scales)
	if err != nil {
		return nil, err
	}
	dom, err := s.Domain()
	if err != nil {
		return nil, err
	}
	slices, err := dist.GridLayout().Slices(dom, remedied)
	if err != nil {
		return nil, err
	}
	grids, err := s.Grids(remedied)
	if err != nil {
		return nil, err
	}
	axes := s.Axes()
	out := make([]GridVector, len(axes))
	for i, axis := range axes {
		sl := slices[axis]
		local := make([]float64, sl.Len())
		copy(local, grids[i][sl.Start:sl.Stop])
		shape := make([]int, dist.Dim())
		for j := range shape {
			shape[j] = 1
		}
		shape[axis] = len(local)
		out[i] = GridVector{Axis: axis, Shape: shape, Values: local}
	}
	return out, nil
}

// Constant is the trivial one-point space used as a placeholder on axes not
// covered by any user space. The grid is the single point 0 and scaling is
// ignored.
type Constant struct {
	dist Distributor
	axis int
}

// NewConstant builds the constant placeholder space for one global axis.
func NewConstant(dist Distributor, axis int) *Constant {
	return &Constant{dist: dist, axis: axis}
}

// Name returns the empty name; constant placeholders are anonymous.
func (s *Constant) Name() string { return "" }

// Dist returns the owning distributor.
func (s *Constant) Dist() Distributor { return s.dist }

// Axes returns the single occupied axis.
func (s *Constant) Axes() []int { return []int{s.axis} }

// Dim returns 1.
func (s *Constant) Dim() int { return 1 }

// IsConstant reports true.
func (s *Constant) IsConstant() bool { return true }

// GroupShape returns (1,).
func (s *Constant) GroupShape() []int { return []int{1} }

// Shape returns the fixed coefficient shape (1,).
func (s *Constant) Shape() []int { return []int{1} }

// Dealias returns 1; constant spaces are never oversampled.
func (s *Constant) Dealias() float64 { return 1 }

// GridShape returns (1,) regardless of the requested scales. The scales are
// still validated so malformed arguments fail identically on every variant.
func (s *Constant) GridShape(scales []float64) ([]int, error) {
	if _, err := s.dist.RemedyScales(scales); err != nil {
		return nil, err
	}
	return []int{1}, nil
}

// Grids returns the single grid point 0.
func (s *Constant) Grids(scales []float64) ([][]float64, error) {
	if _, err := s.dist.RemedyScales(scales); err != nil {
		return nil, err
	}
	return [][]float64{{0}}, nil
}

// LocalGrids returns the constant point positioned on this axis.
func (s *Constant) LocalGrids(scales []float64) ([]GridVector, error) {
	return localGrids(s, scales)
}

// GridBasis returns the constant basis descriptor.
func (s *Constant) GridBasis() Basis { return Basis{Family: FamilyConstant, Space: s} }

// Domain returns the one-space domain containing this placeholder.
func (s *Constant) Domain() (*Domain, error) { return NewDomain([]Space{s}) }

// IntervalSpec carries the shared construction arguments of the 1-D interval
// space variants.
type IntervalSpec struct {
	// Name is an optional human-readable label.
	Name string
	// Size is the coefficient count along the axis.
	Size int
	// Bounds are the physical problem bounds of the interval.
	Bounds Interval
	// Dealias is the grid oversampling factor for nonlinear terms; zero
	// selects the default of 1.
	Dealias float64
	// Dist is the shared distributor.
	Dist Distributor
	// Axis is the global axis index the space occupies.
	Axis int
}

// intervalSpace holds the state shared by the 1-D interval variants.
type intervalSpace struct {
	name    string
	size    int
	bounds  Interval
	dealias float64
	dist    Distributor
	axis    int
	cov     AffineMap
}

// newIntervalSpace validates the shared spec fields and builds the affine
// change-of-variables from the variant's native bounds.
func newIntervalSpace(spec IntervalSpec, native Interval, group int) (intervalSpace, error) {
	if spec.Dist == nil {
		return intervalSpace{}, &SpaceConfigError{Space: spec.Name, Reason: "distributor required"}
	}
	if spec.Size < 1 {
		return intervalSpace{}, &SpaceConfigError{Space: spec.Name, Reason: "size must be at least 1"}
	}
	if spec.Axis < 0 || spec.Axis >= spec.Dist.Dim() {
		return intervalSpace{}, &SpaceConfigError{Space: spec.Name, Reason: "axis outside distributor dimension"}
	}
	dealias := spec.Dealias
	if dealias == 0 {
		dealias = 1
	}
	if dealias < 0 || math.IsNaN(dealias) || math.IsInf(dealias, 0) {
		return intervalSpace{}, &InvalidScaleError{Scale: dealias, Reason: "dealias factor must be positive and finite"}
	}
	if err := checkShape(spec.Name, []int{spec.Size}, []int{group}); err != nil {
		return intervalSpace{}, err
	}
	cov, err := NewAffineMap(native, spec.Bounds)
	if err != nil {
		return intervalSpace{}, err
	}
	return intervalSpace{
		name:    spec.Name,
		size:    spec.Size,
		bounds:  spec.Bounds,
		dealias: dealias,
		dist:    spec.Dist,
		axis:    spec.Axis,
		cov:     cov,
	}, nil
}

func (s *intervalSpace) Name() string      { return s.name }
func (s *intervalSpace) Dist() Distributor { return s.dist }
func (s *intervalSpace) Axes() []int       { return []int{s.axis} }
func (s *intervalSpace) Dim() int          { return 1 }
func (s *intervalSpace) IsConstant() bool  { return false }
func (s *intervalSpace) Shape() []int      { return []int{s.size} }
func (s *intervalSpace) Dealias() float64  { return s.dealias }

// Size returns the coefficient count.
func (s *intervalSpace) Size() int { return s.size }

// Bounds returns the physical problem bounds.
func (s *intervalSpace) Bounds() Interval { return s.bounds }

// COV returns the affine change-of-variables between native and problem
// coordinates.
func (s *intervalSpace) COV() AffineMap { return s.cov }

func (s *intervalSpace) gridShape(scales []float64) ([]int, error) {
	return gridShape(s.dist, s.axis, []int{s.size}, scales)
}
