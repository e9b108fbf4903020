package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var migrations embed.FS

// Migrate applies every pending migration for driver and returns the
// resulting schema version.
func Migrate(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return 0, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		slog.Debug("migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func newProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	case DriverMySQL:
		dialect = goose.DialectMySQL
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	fsys, err := fs.Sub(migrations, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("migrations for %s: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}
