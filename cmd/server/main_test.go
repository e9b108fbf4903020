package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/home-inventory/internal/utils"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "home-inventory dev\n", out)
}

func TestMigrateCommand(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "inventory.db"))

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema version 1\n", out)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "s3cret")

	out, err := execute(t, "token", "--subject", "ops")
	require.NoError(t, err)

	sub, err := utils.ParseAccessToken("s3cret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", sub)
}
