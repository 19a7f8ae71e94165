package domain

import "math"

// periodicNative is the native interval of the Fourier family.
var periodicNative = Interval{Left: 0, Right: 2 * math.Pi}

// parityNative is the native interval of the Sine/Cosine family.
var parityNative = Interval{Left: 0, Right: math.Pi}

// PeriodicInterval is a periodic interval for Fourier series. Coefficients
// come in real/imaginary pairs, so the group shape is 2 and the size must be
// even.
type PeriodicInterval struct {
	intervalSpace
	kmax int
}

// NewPeriodicInterval builds a Fourier space on the given physical bounds.
func NewPeriodicInterval(spec IntervalSpec) (*PeriodicInterval, error) {
	base, err := newIntervalSpace(spec, periodicNative, 2)
	if err != nil {
		return nil, err
	}
	// Maximum native wavenumber, dispensing the Nyquist mode.
	return &PeriodicInterval{intervalSpace: base, kmax: (spec.Size - 1) / 2}, nil
}

// KMax returns the maximum resolvable native wavenumber.
func (s *PeriodicInterval) KMax() int { return s.kmax }

// GroupShape returns (2,): paired coefficients per Fourier mode.
func (s *PeriodicInterval) GroupShape() []int { return []int{2} }

// GridShape returns the scaled grid point count.
func (s *PeriodicInterval) GridShape(scales []float64) ([]int, error) {
	return s.gridShape(scales)
}

// Grids returns the evenly spaced endpoint grid 2*pi*i/N mapped to problem
// coordinates: the first point sits on the left endpoint and the right
// endpoint is excluded by periodicity.
func (s *PeriodicInterval) Grids(scales []float64) ([][]float64, error) {
	shape, err := s.gridShape(scales)
	if err != nil {
		return nil, err
	}
	n := shape[0]
	native := make([]float64, n)
	for i := range native {
		native[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	return [][]float64{s.cov.ToProblemSlice(native)}, nil
}

// LocalGrids restricts Grids to the process-local slab.
func (s *PeriodicInterval) LocalGrids(scales []float64) ([]GridVector, error) {
	return localGrids(s, scales)
}

// GridBasis returns the Fourier basis descriptor.
func (s *PeriodicInterval) GridBasis() Basis { return s.Fourier() }

// Domain returns the one-space domain.
func (s *PeriodicInterval) Domain() (*Domain, error) { return NewDomain([]Space{s}) }

// ParityInterval is a definite-parity periodic interval for Sine and Cosine
// series.
type ParityInterval struct {
	intervalSpace
	kmax int
}

// NewParityInterval builds a Sine/Cosine space on the given physical bounds.
func NewParityInterval(spec IntervalSpec) (*ParityInterval, error) {
	base, err := newIntervalSpace(spec, parityNative, 1)
	if err != nil {
		return nil, err
	}
	return &ParityInterval{intervalSpace: base, kmax: spec.Size - 1}, nil
}

// KMax returns the maximum resolvable native wavenumber.
func (s *ParityInterval) KMax() int { return s.kmax }

// GroupShape returns (1,).
func (s *ParityInterval) GroupShape() []int { return []int{1} }

// GridShape returns the scaled grid point count.
func (s *ParityInterval) GridShape(scales []float64) ([]int, error) {
	return s.gridShape(scales)
}

// Grids returns the evenly spaced interior grid pi*(i+1/2)/N mapped to
// problem coordinates. The endpoints are avoided: definite-parity series
// sample at the zeros of cos(N*x).
func (s *ParityInterval) Grids(scales []float64) ([][]float64, error) {
	shape, err := s.gridShape(scales)
	if err != nil {
		return nil, err
	}
	n := shape[0]
	native := make([]float64, n)
	for i := range native {
		native[i] = math.Pi * (float64(i) + 0.5) / float64(n)
	}
	return [][]float64{s.cov.ToProblemSlice(native)}, nil
}

// LocalGrids restricts Grids to the process-local slab.
func (s *ParityInterval) LocalGrids(scales []float64) ([]GridVector, error) {
	return localGrids(s, scales)
}

// GridBasis returns the Cosine basis descriptor.
func (s *ParityInterval) GridBasis() Basis { return s.Cosine() }

// Domain returns the one-space domain.
func (s *ParityInterval) Domain() (*Domain, error) { return NewDomain([]Space{s}) }
