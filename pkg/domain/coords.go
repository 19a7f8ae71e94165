// Package domain implements the space and domain algebra of a spectral PDE
// solver: affine coordinate maps between native and problem intervals, the
// Space variants (constant, periodic, parity, weighted finite interval), and
// the Domain composition that downstream transform and layout code queries
// for coefficient, grid, and group shapes.
package domain

// Interval is a closed real interval with signed orientation.
type Interval struct {
	Left  float64
	Right float64
}

// Length returns the signed interval length.
func (iv Interval) Length() float64 { return iv.Right - iv.Left }

// Center returns the interval midpoint.
func (iv Interval) Center() float64 { return (iv.Left + iv.Right) / 2 }

// CoordToken enumerates the symbolic coordinate references an AffineMap
// resolves without arithmetic.
type CoordToken int

// Symbolic coordinate references.
const (
	// TokenValue marks a numeric coordinate.
	TokenValue CoordToken = iota
	// TokenLeft refers to the left interval endpoint.
	TokenLeft
	// TokenRight refers to the right interval endpoint.
	TokenRight
	// TokenCenter refers to the interval midpoint.
	TokenCenter
)

// Coord is a tagged coordinate argument: either a numeric value or a symbolic
// endpoint/center reference.
type Coord struct {
	token CoordToken
	value float64
}

// Value wraps a numeric coordinate.
func Value(x float64) Coord { return Coord{token: TokenValue, value: x} }

// Left refers to the left endpoint of whichever interval the map resolves
// the coordinate against.
func Left() Coord { return Coord{token: TokenLeft} }

// Right refers to the right endpoint.
func Right() Coord { return Coord{token: TokenRight} }

// Center refers to the interval midpoint.
func Center() Coord { return Coord{token: TokenCenter} }

// Token returns the symbolic tag of the coordinate.
func (c Coord) Token() CoordToken { return c.token }

// AffineMap is the stateless bidirectional affine transform between a basis's
// native interval and the user-specified problem interval. It is immutable
// after construction.
type AffineMap struct {
	native  Interval
	problem Interval
}

// NewAffineMap builds the affine change-of-variables between native and
// problem bounds. Both intervals must be non-degenerate.
func NewAffineMap(native, problem Interval) (AffineMap, error) {
	if native.Length() == 0 {
		return AffineMap{}, &DegenerateIntervalError{Bounds: native}
	}
	if problem.Length() == 0 {
		return AffineMap{}, &DegenerateIntervalError{Bounds: problem}
	}
	return AffineMap{native: native, problem: problem}, nil
}

// Native returns the native interval.
func (m AffineMap) Native() Interval { return m.native }

// Problem returns the problem interval.
func (m AffineMap) Problem() Interval { return m.problem }

// Jacobian returns d(native)/d(problem) = native length over problem length.
func (m AffineMap) Jacobian() float64 { return m.native.Length() / m.problem.Length() }

// Stretch returns d(problem)/d(native), the inverse of Jacobian.
func (m AffineMap) Stretch() float64 { return m.problem.Length() / m.native.Length() }

// ToProblem resolves a native coordinate into problem coordinates. Symbolic
// tokens return the configured endpoints/center exactly; numeric values are
// normalized against the native interval and rescaled into the problem
// interval.
func (m AffineMap) ToProblem(c Coord) float64 {
	switch c.token {
	case TokenLeft:
		return m.problem.Left
	case TokenRight:
		return m.problem.Right
	case TokenCenter:
		return m.problem.Center()
	default:
		neutral := (c.value - m.native.Left) / m.native.Length()
		return m.problem.Left + neutral*m.problem.Length()
	}
}

// ToNative is the exact inverse of ToProblem, with the same symbolic-token
// handling.
func (m AffineMap) ToNative(c Coord) float64 {
	switch c.token {
	case TokenLeft:
		return m.native.Left
	case TokenRight:
		return m.native.Right
	case TokenCenter:
		return m.native.Center()
	default:
		neutral := (c.value - m.problem.Left) / m.problem.Length()
		return m.native.Left + neutral*m.native.Length()
	}
}

// NativeJacobian returns the constant derivative of the native coordinate
// with respect to the problem coordinate. The argument is accepted for
// interface symmetry with curvilinear maps; an affine map's jacobian is
// position independent.
func (m AffineMap) NativeJacobian(_ Coord) float64 {
	return m.native.Length() / m.problem.Length()
}

// ToProblemSlice maps a native-coordinate grid into problem coordinates,
// returning a new slice.
func (m AffineMap) ToProblemSlice(native []float64) []float64 {
	out := make([]float64, len(native))
	for i, x := range native {
		out[i] = m.ToProblem(Value(x))
	}
	return out
}
