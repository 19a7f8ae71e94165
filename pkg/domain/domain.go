package domain

import (
	"fmt"
)

// Domain is the direct product of a set of spaces spanning every global axis
// of the simulation. One space occupies each axis, with constant placeholders
// filling axes no user space claims. Domains are immutable after construction
// and shared: the registry returns the identical instance for logically equal
// space sets.
type Domain struct {
	dist   Distributor
	spaces []Space

	// Aggregate shapes are fixed by the space tuple, so they are computed
	// once at construction rather than lazily.
	dealias    []float64
	constant   []bool
	groupShape []int
	coeffShape []int

	gridShapes *shapeCache
}

// ExpandSpaces validates a space set and expands it to a full per-axis tuple
// covering every axis the distributor knows, using the distributor's constant
// placeholders for unoccupied axes. The expanded tuple, not the raw argument
// list, is what domains cache and store, so domains are always rectangularly
// complete.
func ExpandSpaces(spaces []Space) ([]Space, error) {
	if len(spaces) == 0 {
		return nil, fmt.Errorf("expand spaces: at least one space required")
	}
	dist := spaces[0].Dist()
	for _, s := range spaces[1:] {
		if s.Dist() != dist {
			return nil, &AttributeMismatchError{Attribute: "distributor"}
		}
	}
	occupied := make(map[int]Space)
	for _, s := range spaces {
		for _, axis := range s.Axes() {
			if prior, ok := occupied[axis]; ok {
				return nil, &OverlappingSpaceError{
					Axis:   axis,
					Spaces: [2]string{spaceLabel(prior), spaceLabel(s)},
				}
			}
			occupied[axis] = s
		}
	}
	constants := dist.ConstantSpaces()
	if len(constants) != dist.Dim() {
		return nil, fmt.Errorf("expand spaces: distributor supplied %d constant spaces for %d axes", len(constants), dist.Dim())
	}
	full := make([]Space, dist.Dim())
	copy(full, constants)
	for axis, s := range occupied {
		if axis < 0 || axis >= len(full) {
			return nil, &SpaceConfigError{Space: spaceLabel(s), Reason: "axis outside distributor dimension"}
		}
		full[axis] = s
	}
	return full, nil
}

// spaceLabel names a space for error messages: its name when set, otherwise
// its type and axes.
func spaceLabel(s Space) string {
	if name := s.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("%T%v", s, s.Axes())
}

// newDomain assembles a domain from an already expanded space tuple.
func newDomain(expanded []Space) *Domain {
	d := &Domain{
		dist:       expanded[0].Dist(),
		spaces:     expanded,
		dealias:    make([]float64, len(expanded)),
		constant:   make([]bool, len(expanded)),
		groupShape: make([]int, len(expanded)),
		coeffShape: make([]int, len(expanded)),
		gridShapes: newShapeCache(),
	}
	for axis, s := range expanded {
		// A space occupying several axes contributes the sub-entry at the
		// axis offset within its own occupied range.
		sub := axis - s.Axes()[0]
		d.dealias[axis] = s.Dealias()
		d.constant[axis] = s.IsConstant()
		d.groupShape[axis] = s.GroupShape()[sub]
		d.coeffShape[axis] = s.Shape()[sub]
	}
	return d
}

// DomainFromDist returns the all-constant domain of a distributor: every axis
// trivial, representing a scalar.
func DomainFromDist(dist Distributor) (*Domain, error) {
	return NewDomain(dist.ConstantSpaces())
}

// DomainFromBases composes the domain spanned by the spaces of the given
// basis descriptors.
func DomainFromBases(bases []Basis) (*Domain, error) {
	spaces := make([]Space, len(bases))
	for i, b := range bases {
		if b.Space == nil {
			return nil, fmt.Errorf("domain from bases: basis %d has no space", i)
		}
		spaces[i] = b.Space
	}
	return NewDomain(spaces)
}

// Dist returns the shared distributor.
func (d *Domain) Dist() Distributor { return d.dist }

// Dim returns the number of global axes.
func (d *Domain) Dim() int { return len(d.spaces) }

// Spaces returns the per-axis space tuple. The same space appears once per
// axis it occupies.
func (d *Domain) Spaces() []Space {
	out := make([]Space, len(d.spaces))
	copy(out, d.spaces)
	return out
}

// Dealias returns each axis's dealias factor in axis order.
func (d *Domain) Dealias() []float64 {
	out := make([]float64, len(d.dealias))
	copy(out, d.dealias)
	return out
}

// ConstantMask reports, per axis, whether the axis is a constant placeholder.
func (d *Domain) ConstantMask() []bool {
	out := make([]bool, len(d.constant))
	copy(out, d.constant)
	return out
}

// GroupShape returns the per-axis minimum coefficient granularity.
func (d *Domain) GroupShape() []int {
	out := make([]int, len(d.groupShape))
	copy(out, d.groupShape)
	return out
}

// GlobalCoeffShape returns the per-axis global coefficient count.
func (d *Domain) GlobalCoeffShape() []int {
	out := make([]int, len(d.coeffShape))
	copy(out, d.coeffShape)
	return out
}

// GlobalGridShape returns the per-axis global grid shape at the given scales.
// The scales are remedied first and the computation is memoized by the
// normalized tuple, so logically equal scale requests share one cache entry.
func (d *Domain) GlobalGridShape(scales []float64) ([]int, error) {
	remedied, err := d.dist.RemedyScales(scales)
	if err != nil {
		return nil, err
	}
	return d.gridShapes.get(remedied, func() ([]int, error) {
		shape := make([]int, len(d.spaces))
		for axis, s := range d.spaces {
			sub := axis - s.Axes()[0]
			spaceShape, err := s.GridShape(remedied)
			if err != nil {
				return nil, err
			}
			shape[axis] = spaceShape[sub]
		}
		return shape, nil
	})
}
