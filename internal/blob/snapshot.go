package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"spectralcore/pkg/domain"
)

// GridSnapshot is the exported grid geometry of a domain at fixed scales:
// everything a post-processing pipeline needs to interpret field buffers
// without re-running the solver.
type GridSnapshot struct {
	Name       string     `json:"name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	Scales     []float64  `json:"scales"`
	CoeffShape []int      `json:"coeff_shape"`
	GridShape  []int      `json:"grid_shape"`
	GroupShape []int      `json:"group_shape"`
	Dealias    []float64  `json:"dealias"`
	Constant   []bool     `json:"constant"`
	Axes       []AxisGrid `json:"axes"`
}

// AxisGrid is one axis's flat global grid, with quadrature weights where the
// space carries them.
type AxisGrid struct {
	Axis     int       `json:"axis"`
	Space    string    `json:"space,omitempty"`
	Constant bool      `json:"constant"`
	Grid     []float64 `json:"grid"`
	Weights  []float64 `json:"weights,omitempty"`
}

// weighted is satisfied by spaces carrying quadrature weights.
type weighted interface {
	Weights(scales []float64) ([]float64, error)
}

// BuildSnapshot assembles the grid snapshot of a domain at the given scales.
func BuildSnapshot(name string, dom *domain.Domain, scales []float64) (GridSnapshot, error) {
	remedied, err := dom.Dist().RemedyScales(scales)
	if err != nil {
		return GridSnapshot{}, err
	}
	gridShape, err := dom.GlobalGridShape(remedied)
	if err != nil {
		return GridSnapshot{}, err
	}
	snap := GridSnapshot{
		Name:       name,
		CreatedAt:  time.Now().UTC(),
		Scales:     remedied,
		CoeffShape: dom.GlobalCoeffShape(),
		GridShape:  gridShape,
		GroupShape: dom.GroupShape(),
		Dealias:    dom.Dealias(),
		Constant:   dom.ConstantMask(),
	}
	for axis, space := range dom.Spaces() {
		sub := axis - space.Axes()[0]
		grids, err := space.Grids(remedied)
		if err != nil {
			return GridSnapshot{}, fmt.Errorf("grids for axis %d: %w", axis, err)
		}
		ag := AxisGrid{Axis: axis, Space: space.Name(), Constant: space.IsConstant(), Grid: grids[sub]}
		if w, ok := space.(weighted); ok {
			weights, err := w.Weights(remedied)
			if err != nil {
				return GridSnapshot{}, fmt.Errorf("weights for axis %d: %w", axis, err)
			}
			ag.Weights = weights
		}
		snap.Axes = append(snap.Axes, ag)
	}
	return snap, nil
}

// ExportSnapshot serializes a snapshot and stores it under key.
func ExportSnapshot(ctx context.Context, store Store, key string, snap GridSnapshot) (Info, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return Info{}, fmt.Errorf("encode snapshot: %w", err)
	}
	opts := PutOptions{
		ContentType: "application/json",
		Metadata: map[string]string{
			"snapshot-name": snap.Name,
			"axes":          strconv.Itoa(len(snap.Axes)),
		},
	}
	return store.Put(ctx, key, bytes.NewReader(payload), opts)
}

// FetchSnapshot loads and decodes a stored snapshot.
func FetchSnapshot(ctx context.Context, store Store, key string) (GridSnapshot, error) {
	_, rc, err := store.Get(ctx, key)
	if err != nil {
		return GridSnapshot{}, err
	}
	defer func() { _ = rc.Close() }()
	var snap GridSnapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return GridSnapshot{}, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return snap, nil
}
