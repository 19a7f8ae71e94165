// Package persistence selects a quadrature table store driver from the
// environment. Other packages depend on the quadrature.TableStore interface
// and this factory; the driver packages are an implementation detail.
package persistence

import (
	"context"
	"fmt"
	"os"

	"spectralcore/internal/infra/persistence/memory"
	"spectralcore/internal/infra/persistence/postgres"
	"spectralcore/internal/infra/persistence/sqlite"
	"spectralcore/internal/quadrature"
)

// Driver identifies a table store backend.
type Driver string

// Supported drivers.
const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open selects a quadrature.TableStore using environment variables.
//
//	SPECTRALCORE_QUAD_STORE: memory|sqlite|postgres (default memory)
//	SPECTRALCORE_QUAD_SQLITE_PATH: database path when driver=sqlite
//	SPECTRALCORE_QUAD_POSTGRES_DSN: connection string when driver=postgres
func Open(ctx context.Context) (quadrature.TableStore, error) {
	driver := os.Getenv("SPECTRALCORE_QUAD_STORE")
	if driver == "" {
		driver = string(DriverMemory)
	}
	switch Driver(driver) {
	case DriverMemory:
		return memory.NewStore(), nil
	case DriverSQLite:
		return sqlite.NewStore(os.Getenv("SPECTRALCORE_QUAD_SQLITE_PATH"))
	case DriverPostgres:
		return postgres.NewStore(ctx, os.Getenv("SPECTRALCORE_QUAD_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown quadrature store driver %s", driver)
	}
}
