package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[general]
dataset_path = "/data/loans.db"

[export]
format = "svg"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/loans.db", cfg.General.DatasetPath)
	assert.Equal(t, "svg", cfg.Export.Format)
	// untouched keys keep defaults
	assert.Equal(t, "Good Loan", cfg.General.DefaultCondition)
	assert.Equal(t, 1024, cfg.Export.Width)
}

func TestLoadFileBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\n"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Server.Addr = ":9000"

	require.NoError(t, SaveFile(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataset, "/tmp/loans.csv")
	t.Setenv(EnvAddr, ":8080")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvWidth, "not-a-number")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	assert.Equal(t, "/tmp/loans.csv", cfg.General.DatasetPath)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1024, cfg.Export.Width)
}

func TestPathHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "loandash", "config.toml"), Path())
}
