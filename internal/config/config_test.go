package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()
	f, err := LoadFile(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), f)
}

func TestWriteAndLoadFile(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "config.yml")
	want := &File{
		Server: ServerConfig{Addr: "127.0.0.1:9999"},
		Pages:  PagesConfig{HistoryLimit: 25},
	}
	require.NoError(t, WriteFile(p, want, false))
	require.ErrorIs(t, WriteFile(p, want, false), ErrConfigFileExists)

	got, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFileInvalidValues(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte("server:\n  addr: \"\"\npages:\n  history_limit: -3\n"), 0o600))

	got, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestLoadFileBadYAML(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte("server: [unclosed"), 0o600))

	got, err := LoadFile(p)
	require.Error(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestHomePathFlag(t *testing.T) {
	t.Parallel()
	p, err := HomePath("/some/where")
	require.NoError(t, err)
	assert.Equal(t, "/some/where", p)
}

func TestSetAppPaths(t *testing.T) {
	SetAppPaths("/data/neo")
	assert.Equal(t, "/data/neo/browser_settings.json", App.Path.Settings)
	assert.Equal(t, "/data/neo/browser_data.db", App.Path.Database)
	assert.Equal(t, "/data/neo/config.yml", App.Path.ConfigFile)
	assert.Equal(t, "/data/neo/backup", App.Path.Backup)
}
