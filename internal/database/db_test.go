package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/home-inventory/internal/config"
)

func TestMigrationsApply(t *testing.T) {
	db := NewTestDB(t)

	for _, table := range []string{"houses", "rooms", "locations", "containers", "items"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := NewTestDB(t)

	version, err := Migrate(context.Background(), db, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")

	db, err := Open(config.Config{DBDriver: DriverSQLite, DBPath: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`INSERT INTO houses (name) VALUES ('Main House')`)
	assert.NoError(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(config.Config{DBDriver: "postgres"})
	assert.Error(t, err)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO rooms (name, house_id) VALUES ('Kitchen', 42)`)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestForeignKeyRestrictsParentDelete(t *testing.T) {
	db := NewTestDB(t)

	res, err := db.Exec(`INSERT INTO houses (name) VALUES ('Main House')`)
	require.NoError(t, err)
	houseID, err := res.LastInsertId()
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO rooms (name, house_id) VALUES ('Kitchen', ?)`, houseID)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM houses WHERE id = ?`, houseID)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestIsForeignKeyViolationOtherErrors(t *testing.T) {
	assert.False(t, IsForeignKeyViolation(nil))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))

	db := NewTestDB(t)
	_, err := db.Exec(`INSERT INTO houses (address) VALUES ('nowhere')`)
	require.Error(t, err)
	assert.False(t, IsForeignKeyViolation(err))
}
