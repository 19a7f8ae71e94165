package domain

// BasisFamily tags the spectral family of a basis descriptor.
type BasisFamily string

// Spectral families exposed by the space variants.
const (
	FamilyConstant BasisFamily = "constant"
	FamilyFourier  BasisFamily = "fourier"
	FamilySine     BasisFamily = "sine"
	FamilyCosine   BasisFamily = "cosine"
	FamilyJacobi   BasisFamily = "jacobi"
)

// Basis is a descriptor binding a spectral family to the space it expands.
// The transform kernels behind each family live outside this layer; the
// descriptor fixes the naming and parameter contract they implement.
type Basis struct {
	Family BasisFamily
	Space  Space
	// Da and Db are the Jacobi parameter offsets relative to the owning
	// space's weight exponents. They are zero for non-Jacobi families.
	Da float64
	Db float64
}

// Fourier returns the complex-exponential basis on this periodic interval.
func (s *PeriodicInterval) Fourier() Basis {
	return Basis{Family: FamilyFourier, Space: s}
}

// Sine returns the odd-parity basis on this parity interval.
func (s *ParityInterval) Sine() Basis {
	return Basis{Family: FamilySine, Space: s}
}

// Cosine returns the even-parity basis on this parity interval.
func (s *ParityInterval) Cosine() Basis {
	return Basis{Family: FamilyCosine, Space: s}
}

// Jacobi returns the Jacobi basis with parameter offsets (da, db) relative
// to the space's weight exponents.
func (s *FiniteInterval) Jacobi(da, db float64) Basis {
	return Basis{Family: FamilyJacobi, Space: s, Da: da, Db: db}
}

// Legendre returns the Legendre basis. The space must carry the Legendre
// weight a = b = 0.
func (s *FiniteInterval) Legendre() (Basis, error) {
	if s.a != 0 || s.b != 0 {
		return Basis{}, &ParameterMismatchError{Family: "Legendre", WantA: 0, WantB: 0, GotA: s.a, GotB: s.b}
	}
	return s.Jacobi(0, 0), nil
}

// Ultraspherical returns the order-d ultraspherical (Gegenbauer) basis. The
// space must carry the Chebyshev weight a = b = -1/2.
func (s *FiniteInterval) Ultraspherical(d float64) (Basis, error) {
	if s.a != -0.5 || s.b != -0.5 {
		return Basis{}, &ParameterMismatchError{Family: "Ultraspherical", WantA: -0.5, WantB: -0.5, GotA: s.a, GotB: s.b}
	}
	return s.Jacobi(d, d), nil
}

// ChebyshevT returns the first-kind Chebyshev basis (ultraspherical order 0).
func (s *FiniteInterval) ChebyshevT() (Basis, error) { return s.Ultraspherical(0) }

// ChebyshevU returns the second-kind Chebyshev basis (ultraspherical order 1).
func (s *FiniteInterval) ChebyshevU() (Basis, error) { return s.Ultraspherical(1) }

// ChebyshevV returns the third-kind Chebyshev basis (ultraspherical order 2).
func (s *FiniteInterval) ChebyshevV() (Basis, error) { return s.Ultraspherical(2) }

// ChebyshevW returns the fourth-kind Chebyshev basis (ultraspherical order 3).
func (s *FiniteInterval) ChebyshevW() (Basis, error) { return s.Ultraspherical(3) }
