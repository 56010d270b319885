package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Equal(t, filepath.Join(filepath.Dir(path), DefaultDBName), cfg.DBPath)
	assert.Equal(t, filepath.Join(filepath.Dir(path), DefaultAlarmsName), cfg.AlarmsPath)
	assert.Equal(t, "q", cfg.Keys.Quit)
	assert.Equal(t, "/", cfg.Keys.Filter)
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "db_path = \"/custom/items.db\"\ndefault_filter = \"milk\"\n\n[keys]\nquit = \"x\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)

	assert.Equal(t, "/custom/items.db", cfg.DBPath)
	assert.Equal(t, "milk", cfg.DefaultFilter)
	assert.Equal(t, "x", cfg.Keys.Quit)
	// Unset paths fall back next to the config file.
	assert.Equal(t, filepath.Join(dir, DefaultAlarmsName), cfg.AlarmsPath)
	assert.Equal(t, filepath.Join(dir, DefaultLogName), cfg.LogPath)
}
