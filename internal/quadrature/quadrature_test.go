package quadrature

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestLegendreRule(t *testing.T) {
	src := New()
	nodes, err := src.BuildGrid(4, 0, 0)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	weights, err := src.BuildWeights(4, 0, 0)
	if err != nil {
		t.Fatalf("BuildWeights: %v", err)
	}
	if len(nodes) != 4 || len(weights) != 4 {
		t.Fatalf("rule sizes %d/%d, want 4/4", len(nodes), len(weights))
	}

	// Known 4-point Gauss-Legendre rule.
	wantNodes := []float64{-0.8611363115940526, -0.3399810435848563, 0.3399810435848563, 0.8611363115940526}
	wantWeights := []float64{0.3478548451374538, 0.6521451548625461, 0.6521451548625461, 0.3478548451374538}
	for i := range wantNodes {
		if math.Abs(nodes[i]-wantNodes[i]) > 1e-12 {
			t.Errorf("node[%d] = %.15g, want %.15g", i, nodes[i], wantNodes[i])
		}
		if math.Abs(weights[i]-wantWeights[i]) > 1e-12 {
			t.Errorf("weight[%d] = %.15g, want %.15g", i, weights[i], wantWeights[i])
		}
	}

	for i, x := range nodes {
		if x <= -1 || x >= 1 {
			t.Errorf("node[%d] = %g outside (-1, 1)", i, x)
		}
		if math.Abs(x+nodes[len(nodes)-1-i]) > 1e-12 {
			t.Errorf("nodes not symmetric about 0: %g vs %g", x, nodes[len(nodes)-1-i])
		}
	}

	var sum float64
	for _, w := range weights {
		if w <= 0 {
			t.Errorf("non-positive weight %g", w)
		}
		sum += w
	}
	if math.Abs(sum-2) > 1e-12 {
		t.Errorf("Legendre weights sum to %g, want 2", sum)
	}
}

func TestChebyshevRuleClosedForm(t *testing.T) {
	src := New()
	const n = 8
	nodes, err := src.BuildGrid(n, -0.5, -0.5)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	weights, err := src.BuildWeights(n, -0.5, -0.5)
	if err != nil {
		t.Fatalf("BuildWeights: %v", err)
	}
	// Gauss-Chebyshev: x_i = cos((2i+1)pi/2n) with equal weights pi/n.
	for i := 0; i < n; i++ {
		want := math.Cos(float64(2*(n-1-i)+1) * math.Pi / (2 * n))
		if math.Abs(nodes[i]-want) > 1e-12 {
			t.Errorf("node[%d] = %.15g, want %.15g", i, nodes[i], want)
		}
		if math.Abs(weights[i]-math.Pi/n) > 1e-12 {
			t.Errorf("weight[%d] = %.15g, want %.15g", i, weights[i], math.Pi/n)
		}
	}
}

func TestRuleLengthsMatch(t *testing.T) {
	src := New()
	cases := []struct {
		n    int
		a, b float64
	}{
		{n: 1, a: 0, b: 0},
		{n: 3, a: 0.5, b: 0},
		{n: 6, a: -0.5, b: -0.5},
		{n: 9, a: 1, b: 2},
	}
	for _, tc := range cases {
		nodes, err := src.BuildGrid(tc.n, tc.a, tc.b)
		if err != nil {
			t.Fatalf("BuildGrid(%d, %g, %g): %v", tc.n, tc.a, tc.b, err)
		}
		weights, err := src.BuildWeights(tc.n, tc.a, tc.b)
		if err != nil {
			t.Fatalf("BuildWeights(%d, %g, %g): %v", tc.n, tc.a, tc.b, err)
		}
		if len(nodes) != tc.n || len(weights) != tc.n {
			t.Errorf("(%d, %g, %g): lengths %d/%d, want %d", tc.n, tc.a, tc.b, len(nodes), len(weights), tc.n)
		}
	}
}

func TestSinglePointRule(t *testing.T) {
	src := New()
	nodes, err := src.BuildGrid(1, 0, 0)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	weights, err := src.BuildWeights(1, 0, 0)
	if err != nil {
		t.Fatalf("BuildWeights: %v", err)
	}
	if math.Abs(nodes[0]) > 1e-15 {
		t.Errorf("single Legendre node = %g, want 0", nodes[0])
	}
	if math.Abs(weights[0]-2) > 1e-15 {
		t.Errorf("single Legendre weight = %g, want 2", weights[0])
	}
}

func TestTableMemoization(t *testing.T) {
	src := New()
	if _, err := src.BuildGrid(16, 0, 0); err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if _, err := src.BuildWeights(16, 0, 0); err != nil {
		t.Fatalf("BuildWeights: %v", err)
	}
	if _, err := src.BuildGrid(16, 0, 0); err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	stats := src.Stats()
	if stats.Misses != 1 {
		t.Errorf("misses = %d, want 1 build for repeated identical arguments", stats.Misses)
	}
	if stats.Hits != 2 {
		t.Errorf("hits = %d, want 2", stats.Hits)
	}
}

func TestDeterministicAcrossSources(t *testing.T) {
	a, err := New().BuildGrid(12, -0.5, 0.5)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	b, err := New().BuildGrid(12, -0.5, 0.5)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("independent sources disagree at %d: %.17g vs %.17g", i, a[i], b[i])
		}
	}
}

func TestInvalidArguments(t *testing.T) {
	src := New()
	if _, err := src.BuildGrid(-1, 0, 0); err == nil {
		t.Error("negative size must be rejected")
	}
	if _, err := src.BuildGrid(4, -1, 0); err == nil {
		t.Error("a <= -1 must be rejected")
	}
	if _, err := src.BuildWeights(4, 0, -1.5); err == nil {
		t.Error("b <= -1 must be rejected")
	}
}

// stubStore is an in-test TableStore recording calls.
type stubStore struct {
	tables map[string]Table
	loads  int
	saves  int
}

func newStubStore() *stubStore { return &stubStore{tables: make(map[string]Table)} }

func (s *stubStore) Load(_ context.Context, n int, a, b float64) (Table, bool, error) {
	s.loads++
	t, ok := s.tables[tableKey(n, a, b)]
	return t, ok, nil
}

func (s *stubStore) Save(_ context.Context, t Table) error {
	s.saves++
	s.tables[t.Key()] = t
	return nil
}

func TestStoreWarmCache(t *testing.T) {
	store := newStubStore()
	first := New(WithStore(store))
	nodes, err := first.BuildGrid(10, 0, 0)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("fresh build saved %d times, want 1", store.saves)
	}

	second := New(WithStore(store))
	warm, err := second.BuildGrid(10, 0, 0)
	if err != nil {
		t.Fatalf("warm BuildGrid: %v", err)
	}
	stats := second.Stats()
	if stats.StoreHits != 1 || stats.Misses != 0 {
		t.Errorf("warm source stats = %+v, want one store hit and no misses", stats)
	}
	for i := range nodes {
		if nodes[i] != warm[i] {
			t.Fatalf("warm table differs at %d", i)
		}
	}
}

// failingStore errors on every call, like a misconfigured warm cache.
type failingStore struct{}

func (failingStore) Load(context.Context, int, float64, float64) (Table, bool, error) {
	return Table{}, false, errors.New("store unavailable")
}

func (failingStore) Save(context.Context, Table) error {
	return errors.New("store unavailable")
}

func TestStoreFailuresCountedNotFatal(t *testing.T) {
	src := New(WithStore(failingStore{}))
	nodes, err := src.BuildGrid(6, 0, 0)
	if err != nil {
		t.Fatalf("BuildGrid with failing store: %v", err)
	}
	if len(nodes) != 6 {
		t.Fatalf("expected a locally built rule, got %d nodes", len(nodes))
	}
	stats := src.Stats()
	if stats.Misses != 1 {
		t.Errorf("stats.Misses = %d, want 1", stats.Misses)
	}
	if stats.StoreErrors != 2 {
		t.Errorf("stats.StoreErrors = %d, want 2 (failed load and failed save)", stats.StoreErrors)
	}
}
