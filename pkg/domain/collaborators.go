package domain

// AxisSlice is a half-open [Start, Stop) index range into one axis of the
// global grid shape. It identifies the slab owned by the current process.
type AxisSlice struct {
	Start int
	Stop  int
}

// Len returns the number of indices covered by the slice.
func (s AxisSlice) Len() int { return s.Stop - s.Start }

// GridLayout reports the per-process decomposition of grid space. Every
// process computes identical global shapes; only the slices differ.
type GridLayout interface {
	// Slices returns, for the current process, one half-open index range per
	// global axis of the given domain at the given (already remedied) scales.
	Slices(d *Domain, scales []float64) ([]AxisSlice, error)
}

// Distributor supplies process topology and scale normalization to the space
// and domain layer. It is consumed as a black box; the reference
// implementation lives outside this package.
//
// Implementations must be deterministic: given identical inputs every process
// must compute identical results, because downstream distributed-array
// slicing assumes globally agreed shapes with no reconciliation step.
// ConstantSpaces must return the same Space instances on every call, since
// domain registry identity is keyed on them.
type Distributor interface {
	// Dim is the total number of global axes in the simulation.
	Dim() int
	// ConstantSpaces returns the default constant space for each axis, used
	// to fill axes not covered by any user space.
	ConstantSpaces() []Space
	// RemedyScales normalizes a scale argument into a fully specified
	// per-axis tuple of length Dim: nil selects all ones, a single value is
	// broadcast to every axis, and an explicit per-axis sequence is
	// validated. Non-positive or malformed entries yield InvalidScaleError.
	RemedyScales(scales []float64) ([]float64, error)
	// GridLayout returns the grid-space decomposition for this process.
	GridLayout() GridLayout
}

// QuadratureSource builds Gauss-Jacobi quadrature grids and weights for
// finite intervals. Grids and weights are returned in native [-1, 1]
// coordinates, in matching order.
type QuadratureSource interface {
	BuildGrid(n int, a, b float64) ([]float64, error)
	BuildWeights(n int, a, b float64) ([]float64, error)
}
