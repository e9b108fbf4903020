package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "inventory.db", cfg.DBPath)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, "inventory.changes", cfg.Events.Queue)
	assert.False(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Cache.Methods["GET"])
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.AuthTokenTTL)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_PATH", "/custom/inventory.sqlite")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CACHE_METHODS", "get, head")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "/custom/inventory.sqlite", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.True(t, cfg.Cache.Methods["HEAD"])
}

func TestLoadMySQLRequiresCredentials(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_NAME")

	t.Setenv("DB_USER", "inventory")
	t.Setenv("DB_NAME", "inventory")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "3306", cfg.DBPort)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("APP_PORT", "eighty")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "APP_PORT")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_port: \"7000\"\ndb_path: from-file.db\n"), 0o600))
	t.Setenv("DB_PATH", "from-env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "from-env.db", cfg.DBPath)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestRateLimitNormalisation(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.RateLimit.Capacity)
	assert.Equal(t, 1, cfg.RateLimit.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.TTL)
}
