package integration

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"spectralcore/internal/blob"
	"spectralcore/internal/dist"
	"spectralcore/internal/infra/persistence"
	"spectralcore/internal/observability"
	"spectralcore/internal/quadrature"
	"spectralcore/pkg/domain"
)

// TestIntegrationSmoke exercises a minimal end-to-end construction cycle for
// each supported quadrature table store and blob adapter. It intentionally
// keeps scope tiny so it can act as a fast CI health check.
func TestIntegrationSmoke(t *testing.T) {
	ctx := context.Background()

	// Store variants go through the persistence facade, selected by env, so
	// this test never reaches into driver packages directly.
	storeVariants := []struct {
		name string
		open func(t *testing.T) quadrature.TableStore
	}{
		{
			name: "memory-table-store",
			open: func(t *testing.T) quadrature.TableStore {
				t.Setenv("SPECTRALCORE_QUAD_STORE", "memory")
				s, err := persistence.Open(ctx)
				if err != nil {
					t.Fatalf("open memory store: %v", err)
				}
				return s
			},
		},
		{
			name: "sqlite-table-store",
			open: func(t *testing.T) quadrature.TableStore {
				t.Setenv("SPECTRALCORE_QUAD_STORE", "sqlite")
				t.Setenv("SPECTRALCORE_QUAD_SQLITE_PATH", filepath.Join(t.TempDir(), "tables.db"))
				s, err := persistence.Open(ctx)
				if err != nil {
					t.Fatalf("open sqlite store: %v", err)
				}
				return s
			},
		},
	}

	blobVariants := []struct {
		name string
		open func(t *testing.T) blob.Store
	}{
		{
			name: "memory-blob",
			open: func(_ *testing.T) blob.Store { return blob.NewMemory() },
		},
		{
			name: "filesystem-blob",
			open: func(t *testing.T) blob.Store {
				fs, err := blob.NewFilesystem(t.TempDir())
				if err != nil {
					t.Fatalf("new filesystem blob: %v", err)
				}
				return fs
			},
		},
	}

	for _, sv := range storeVariants {
		t.Run(sv.name, func(t *testing.T) {
			quad := quadrature.New(quadrature.WithStore(sv.open(t)))
			d, err := dist.New(2)
			if err != nil {
				t.Fatalf("new dist: %v", err)
			}
			theta, err := domain.NewPeriodicInterval(domain.IntervalSpec{
				Name:   "theta",
				Size:   8,
				Bounds: domain.Interval{Left: 0, Right: 2 * math.Pi},
				Dist:   d,
				Axis:   0,
			})
			if err != nil {
				t.Fatalf("new periodic interval: %v", err)
			}
			x, err := domain.NewFiniteInterval(domain.IntervalSpec{
				Name:   "x",
				Size:   8,
				Bounds: domain.Interval{Left: -1, Right: 1},
				Dist:   d,
				Axis:   1,
			}, 0, 0, quad)
			if err != nil {
				t.Fatalf("new finite interval: %v", err)
			}
			dom, err := domain.NewDomain([]domain.Space{theta, x})
			if err != nil {
				t.Fatalf("new domain: %v", err)
			}

			shape, err := dom.GlobalGridShape([]float64{1, 1})
			if err != nil {
				t.Fatalf("global grid shape: %v", err)
			}
			if len(shape) != 2 || shape[0] != 8 || shape[1] != 8 {
				t.Fatalf("unexpected grid shape %v", shape)
			}

			// Legendre nodes lie strictly inside the problem interval and
			// come out symmetric about its center.
			grids, err := x.Grids(nil)
			if err != nil {
				t.Fatalf("finite grids: %v", err)
			}
			nodes := grids[0]
			for i, v := range nodes {
				if v <= -1 || v >= 1 {
					t.Fatalf("node %d = %v escapes the open interval", i, v)
				}
			}
			for i := range nodes {
				if diff := nodes[i] + nodes[len(nodes)-1-i]; math.Abs(diff) > 1e-12 {
					t.Fatalf("nodes not symmetric: %v vs %v", nodes[i], nodes[len(nodes)-1-i])
				}
			}
			weights, err := x.Weights(nil)
			if err != nil {
				t.Fatalf("finite weights: %v", err)
			}
			var sum float64
			for _, w := range weights {
				sum += w
			}
			if math.Abs(sum-2) > 1e-12 {
				t.Fatalf("Legendre weights sum to %v, want 2", sum)
			}

			stats := quad.Stats()
			if stats.Misses == 0 {
				t.Fatalf("expected at least one quadrature build, got %+v", stats)
			}

			rec := observability.NewExpvarRecorder("", quad)
			snap := rec.Snapshot()
			if snap.DomainRegistry.Size == 0 {
				t.Fatalf("expected registered domains in observability snapshot")
			}
		})
	}

	for _, bv := range blobVariants {
		t.Run(bv.name, func(t *testing.T) {
			bs := bv.open(t)
			quad := quadrature.New()
			d, err := dist.New(1)
			if err != nil {
				t.Fatalf("new dist: %v", err)
			}
			x, err := domain.NewFiniteInterval(domain.IntervalSpec{
				Name:   "x",
				Size:   6,
				Bounds: domain.Interval{Left: 0, Right: 3},
				Dist:   d,
				Axis:   0,
			}, 0, 0, quad)
			if err != nil {
				t.Fatalf("new finite interval: %v", err)
			}
			dom, err := domain.NewDomain([]domain.Space{x})
			if err != nil {
				t.Fatalf("new domain: %v", err)
			}
			snap, err := blob.BuildSnapshot("smoke", dom, []float64{1.5})
			if err != nil {
				t.Fatalf("build snapshot: %v", err)
			}
			key := "snapshots/smoke.json"
			if _, err := blob.ExportSnapshot(ctx, bs, key, snap); err != nil {
				t.Fatalf("export snapshot: %v", err)
			}
			back, err := blob.FetchSnapshot(ctx, bs, key)
			if err != nil {
				t.Fatalf("fetch snapshot: %v", err)
			}
			if back.Name != snap.Name || len(back.Axes) != len(snap.Axes) {
				t.Fatalf("snapshot round trip mismatch: %+v vs %+v", back, snap)
			}
			if ok, err := bs.Delete(ctx, key); err != nil || !ok {
				t.Fatalf("blob delete: %v ok=%v", err, ok)
			}
		})
	}

	// Sanity: ensure no environment leakage (none set here, but guard for
	// future edits).
	if os.Getenv("SPECTRALCORE_BLOB_DRIVER") != "" || os.Getenv("SPECTRALCORE_QUAD_STORE") != "" {
		t.Fatalf("expected no test-induced env leakage")
	}
}
