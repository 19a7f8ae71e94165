package domain

import "fmt"

// DegenerateIntervalError reports an interval whose endpoints coincide, which
// would make the affine change-of-variables singular.
type DegenerateIntervalError struct {
	Bounds Interval
}

func (e *DegenerateIntervalError) Error() string {
	return fmt.Sprintf("degenerate interval [%g, %g]: endpoints must differ", e.Bounds.Left, e.Bounds.Right)
}

// ShapeGroupMismatchError reports a coefficient count that is not an exact
// multiple of the space's group shape along some axis.
type ShapeGroupMismatchError struct {
	Space      string
	Size       int
	GroupShape int
}

func (e *ShapeGroupMismatchError) Error() string {
	return fmt.Sprintf("space %q: size %d is not a multiple of group shape %d", e.Space, e.Size, e.GroupShape)
}

// OverlappingSpaceError reports two spaces claiming the same global axis.
type OverlappingSpaceError struct {
	Axis   int
	Spaces [2]string
}

func (e *OverlappingSpaceError) Error() string {
	return fmt.Sprintf("overlapping spaces %q and %q both claim axis %d", e.Spaces[0], e.Spaces[1], e.Axis)
}

// AttributeMismatchError reports spaces composed into one domain while
// referencing different distributors.
type AttributeMismatchError struct {
	Attribute string
}

func (e *AttributeMismatchError) Error() string {
	return fmt.Sprintf("spaces disagree on %s: all spaces in a domain must share one instance", e.Attribute)
}

// ParameterMismatchError reports a named spectral-family constructor invoked
// on a space whose weight parameters do not match the family's requirements.
type ParameterMismatchError struct {
	Family string
	WantA  float64
	WantB  float64
	GotA   float64
	GotB   float64
}

func (e *ParameterMismatchError) Error() string {
	return fmt.Sprintf("%s basis requires weight parameters a=%g b=%g, space has a=%g b=%g",
		e.Family, e.WantA, e.WantB, e.GotA, e.GotB)
}

// InvalidScaleError reports a malformed or non-positive scale argument. It is
// raised by Distributor.RemedyScales implementations and propagated unchanged
// by every shape query.
type InvalidScaleError struct {
	Scale  float64
	Reason string
}

func (e *InvalidScaleError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid scale %g: %s", e.Scale, e.Reason)
	}
	return fmt.Sprintf("invalid scale %g: scales must be positive", e.Scale)
}

// SpaceConfigError reports an invalid space construction argument that is not
// covered by a more specific error type (missing distributor, axis out of
// range, non-positive size).
type SpaceConfigError struct {
	Space  string
	Reason string
}

func (e *SpaceConfigError) Error() string {
	return fmt.Sprintf("space %q: %s", e.Space, e.Reason)
}
