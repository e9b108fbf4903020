package database

import (
	"database/sql"
	"testing"

	"github.com/iliyamo/home-inventory/internal/config"
)

// NewTestDB creates a fresh in-memory SQLite database with every migration
// applied.  It is closed when the test ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := Open(config.Config{DBDriver: DriverSQLite, DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
