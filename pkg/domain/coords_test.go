package domain

import (
	"errors"
	"math"
	"testing"
)

func TestAffineMapRoundTrip(t *testing.T) {
	m, err := NewAffineMap(Interval{Left: 0, Right: 2 * math.Pi}, Interval{Left: -3, Right: 5})
	if err != nil {
		t.Fatalf("NewAffineMap: %v", err)
	}
	for _, x := range []float64{0, 0.5, math.Pi, 2 * math.Pi, -1.25, 9.75} {
		back := m.ToNative(Value(m.ToProblem(Value(x))))
		if math.Abs(back-x) > 1e-12 {
			t.Errorf("to_native(to_problem(%g)) = %g", x, back)
		}
	}
	for _, y := range []float64{-3, 0, 1.5, 5, 12} {
		back := m.ToProblem(Value(m.ToNative(Value(y))))
		if math.Abs(back-y) > 1e-12 {
			t.Errorf("to_problem(to_native(%g)) = %g", y, back)
		}
	}
}

func TestAffineMapSymbolicTokens(t *testing.T) {
	m, err := NewAffineMap(Interval{Left: -1, Right: 1}, Interval{Left: 2, Right: 10})
	if err != nil {
		t.Fatalf("NewAffineMap: %v", err)
	}
	cases := []struct {
		name        string
		coord       Coord
		wantProblem float64
		wantNative  float64
	}{
		{name: "left", coord: Left(), wantProblem: 2, wantNative: -1},
		{name: "right", coord: Right(), wantProblem: 10, wantNative: 1},
		{name: "center", coord: Center(), wantProblem: 6, wantNative: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.ToProblem(tc.coord); got != tc.wantProblem {
				t.Errorf("ToProblem(%s) = %g, want %g", tc.name, got, tc.wantProblem)
			}
			if got := m.ToNative(tc.coord); got != tc.wantNative {
				t.Errorf("ToNative(%s) = %g, want %g", tc.name, got, tc.wantNative)
			}
		})
	}
}

func TestAffineMapJacobian(t *testing.T) {
	m, err := NewAffineMap(Interval{Left: 0, Right: math.Pi}, Interval{Left: 0, Right: 2})
	if err != nil {
		t.Fatalf("NewAffineMap: %v", err)
	}
	want := math.Pi / 2
	for _, c := range []Coord{Value(0), Value(1.7), Left(), Center()} {
		if got := m.NativeJacobian(c); math.Abs(got-want) > 1e-15 {
			t.Errorf("NativeJacobian = %g, want %g", got, want)
		}
	}
	if got := m.Jacobian() * m.Stretch(); math.Abs(got-1) > 1e-15 {
		t.Errorf("Jacobian*Stretch = %g, want 1", got)
	}
}

func TestAffineMapDegenerateBounds(t *testing.T) {
	var degErr *DegenerateIntervalError
	if _, err := NewAffineMap(Interval{Left: 1, Right: 1}, Interval{Left: 0, Right: 2}); !errors.As(err, &degErr) {
		t.Fatalf("degenerate native bounds: got %v, want DegenerateIntervalError", err)
	}
	if _, err := NewAffineMap(Interval{Left: -1, Right: 1}, Interval{Left: 4, Right: 4}); !errors.As(err, &degErr) {
		t.Fatalf("degenerate problem bounds: got %v, want DegenerateIntervalError", err)
	}
}

func TestAffineMapSliceMapping(t *testing.T) {
	m, err := NewAffineMap(Interval{Left: 0, Right: 1}, Interval{Left: 10, Right: 30})
	if err != nil {
		t.Fatalf("NewAffineMap: %v", err)
	}
	got := m.ToProblemSlice([]float64{0, 0.25, 0.5, 1})
	want := []float64{10, 15, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("mapped length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("mapped[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}
