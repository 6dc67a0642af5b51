package repomanager

import (
	"context"
	"database/sql"
	"fmt"
)

// Storage drivers understood by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Open connects to the configured store, runs its migrations and returns the
// connection (nil for the memory driver) together with its manager.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		sqlDriver string
		m         RepositoryManager
	)

	switch driver {
	case DriverPostgres:
		sqlDriver, m = "pgx", NewPostgresRepositoryManager()
	case DriverSQLite:
		sqlDriver, m = "sqlite", NewSQLiteRepositoryManager()
	case DriverMemory:
		return nil, NewMemoryRepositoryManager(), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, m, nil
}
