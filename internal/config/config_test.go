package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, BackendSnapshot, cfg.Storage)
	assert.NotEmpty(t, cfg.SnapshotPath)
	assert.NotEmpty(t, cfg.DBPath)

	assert.Equal(t, time.Monday, cfg.FirstDay())
}

func TestLoadFile_ParsesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
storage = "sqlite"
db-path = "/tmp/roadmap-test.db"
week-start = "sunday"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage)
	assert.Equal(t, "/tmp/roadmap-test.db", cfg.DBPath)

	assert.Equal(t, time.Sunday, cfg.FirstDay())
}

func TestLoadFile_UnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`storage = "redis"`), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_UnknownWeekStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`week-start = "someday"`), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`storage = [broken`), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
