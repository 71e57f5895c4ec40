package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrate_SQLite(t *testing.T) {
	t.Setenv("CORNERSTONE_DB_PATH", filepath.Join(t.TempDir(), "cornerstone.db"))

	out, err := execute(t, "migrate", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "schema at version 10\n", out)
}

func TestMigrate_Rollback(t *testing.T) {
	t.Setenv("CORNERSTONE_DB_PATH", filepath.Join(t.TempDir(), "cornerstone.db"))

	out, err := execute(t, "migrate", "--to", "1")
	require.NoError(t, err)
	assert.Equal(t, "schema at version 1\n", out)
}

func TestMigrate_InvalidConfig(t *testing.T) {
	t.Setenv("CORNERSTONE_DRIVER", "mysql")

	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "unknown driver")
}

func TestServe_InvalidPort(t *testing.T) {
	t.Setenv("CORNERSTONE_DB_PATH", filepath.Join(t.TempDir(), "cornerstone.db"))

	_, err := execute(t, "serve", "--port", "not-a-port")
	assert.ErrorContains(t, err, "invalid port")
}

func TestRoot_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "migrate")
	assert.ErrorContains(t, err, "failed to read config file")
}
