// Command domain-report constructs a domain from space definitions given on
// the command line and emits its grid geometry as JSON. It is the operational
// entry point for inspecting shapes, grids, and quadrature weights without
// writing a program against the library.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"spectralcore/internal/blob"
	"spectralcore/internal/dist"
	"spectralcore/internal/infra/persistence"
	"spectralcore/internal/quadrature"
	"spectralcore/pkg/domain"
)

var exitFunc = os.Exit

// spaceSpec is one parsed -space definition. Axis is assigned from the order
// the flags appear in.
type spaceSpec struct {
	Kind  string
	Name  string
	Size  int
	Left  float64
	Right float64
	A     float64
	B     float64
}

// spaceList collects repeated -space flags.
type spaceList []spaceSpec

func (l *spaceList) String() string {
	parts := make([]string, len(*l))
	for i, s := range *l {
		parts[i] = s.Kind + ":" + s.Name
	}
	return strings.Join(parts, ",")
}

func (l *spaceList) Set(value string) error {
	spec, err := parseSpaceSpec(value)
	if err != nil {
		return err
	}
	*l = append(*l, spec)
	return nil
}

// parseSpaceSpec parses kind:name:size:left:right with an optional :a:b tail
// for finite spaces. The pi token is accepted in bounds so periodic intervals
// can be written without digits of precision.
func parseSpaceSpec(value string) (spaceSpec, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 5 && len(parts) != 7 {
		return spaceSpec{}, fmt.Errorf("space %q: want kind:name:size:left:right[:a:b]", value)
	}
	spec := spaceSpec{Kind: strings.ToLower(parts[0]), Name: parts[1]}
	switch spec.Kind {
	case "periodic", "parity", "finite":
	default:
		return spaceSpec{}, fmt.Errorf("space %q: unknown kind %q", value, spec.Kind)
	}
	size, err := strconv.Atoi(parts[2])
	if err != nil {
		return spaceSpec{}, fmt.Errorf("space %q: size: %w", value, err)
	}
	spec.Size = size
	if spec.Left, err = parseBound(parts[3]); err != nil {
		return spaceSpec{}, fmt.Errorf("space %q: left: %w", value, err)
	}
	if spec.Right, err = parseBound(parts[4]); err != nil {
		return spaceSpec{}, fmt.Errorf("space %q: right: %w", value, err)
	}
	if len(parts) == 7 {
		if spec.Kind != "finite" {
			return spaceSpec{}, fmt.Errorf("space %q: weight parameters only apply to finite spaces", value)
		}
		if spec.A, err = strconv.ParseFloat(parts[5], 64); err != nil {
			return spaceSpec{}, fmt.Errorf("space %q: a: %w", value, err)
		}
		if spec.B, err = strconv.ParseFloat(parts[6], 64); err != nil {
			return spaceSpec{}, fmt.Errorf("space %q: b: %w", value, err)
		}
	}
	return spec, nil
}

func parseBound(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pi":
		return math.Pi, nil
	case "2pi":
		return 2 * math.Pi, nil
	case "-pi":
		return -math.Pi, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseScales(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("scale %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("domain-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var spaces spaceList
	fs.Var(&spaces, "space", "space definition kind:name:size:left:right[:a:b]; repeatable, axis follows flag order")
	var (
		name      = fs.String("name", "report", "snapshot name recorded in the output")
		scalesRaw = fs.String("scales", "", "comma-separated grid scales, one per axis (default 1 everywhere)")
		exportKey = fs.String("export", "", "also write the report to the configured blob store under this key")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if len(spaces) == 0 {
		fmt.Fprintln(stderr, "domain-report: at least one -space definition is required")
		return 2
	}
	scales, err := parseScales(*scalesRaw)
	if err != nil {
		fmt.Fprintf(stderr, "domain-report: %v\n", err)
		return 2
	}
	if err := run(context.Background(), stdout, spaces, *name, scales, *exportKey); err != nil {
		fmt.Fprintf(stderr, "domain-report: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, stdout io.Writer, specs []spaceSpec, name string, scales []float64, exportKey string) error {
	store, err := persistence.Open(ctx)
	if err != nil {
		return fmt.Errorf("open quadrature store: %w", err)
	}
	quad := quadrature.New(quadrature.WithStore(store))

	d, err := dist.New(len(specs))
	if err != nil {
		return fmt.Errorf("build distributor: %w", err)
	}
	built := make([]domain.Space, len(specs))
	for axis, spec := range specs {
		is := domain.IntervalSpec{
			Name:   spec.Name,
			Size:   spec.Size,
			Bounds: domain.Interval{Left: spec.Left, Right: spec.Right},
			Dist:   d,
			Axis:   axis,
		}
		var space domain.Space
		switch spec.Kind {
		case "periodic":
			space, err = domain.NewPeriodicInterval(is)
		case "parity":
			space, err = domain.NewParityInterval(is)
		case "finite":
			space, err = domain.NewFiniteInterval(is, spec.A, spec.B, quad)
		}
		if err != nil {
			return fmt.Errorf("build space %s: %w", spec.Name, err)
		}
		built[axis] = space
	}
	dom, err := domain.NewDomain(built)
	if err != nil {
		return fmt.Errorf("build domain: %w", err)
	}

	snap, err := blob.BuildSnapshot(name, dom, scales)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if exportKey != "" {
		bs, err := blob.Open(ctx)
		if err != nil {
			return fmt.Errorf("open blob store: %w", err)
		}
		if _, err := blob.ExportSnapshot(ctx, bs, exportKey, snap); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
