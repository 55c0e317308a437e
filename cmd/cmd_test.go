package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateconpizza/neo/internal/db"
	"github.com/mateconpizza/neo/internal/history"
)

// resetFlags restores every flag to its default; cobra keeps parsed values
// between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	resetFlags(Root)

	var out bytes.Buffer
	Root.SetOut(&out)
	Root.SetErr(&out)
	Root.SetArgs(append([]string{"--home", home}, args...))
	err := Root.ExecuteContext(context.Background())

	return out.String(), err
}

func mustRun(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := run(t, home, args...)
	require.NoError(t, err, "neo %s: %s", strings.Join(args, " "), out)

	return out
}

func TestVersion(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	assert.Contains(t, out, "neobrowser v")
}

func TestVisitAndHistory(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, "visit", "https://a.example", "Page", "A")
	mustRun(t, home, "visit", "https://a.example", "Page", "A")
	mustRun(t, home, "visit", "neo://history")
	assert.Equal(t, "https://b.example\n", mustRun(t, home, "visit", "b.example"))

	var entries []*history.Entry
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "history", "--json")), &entries))
	require.Len(t, entries, 2)

	byURL := map[string]*history.Entry{}
	for _, e := range entries {
		byURL[e.URL] = e
	}
	assert.Equal(t, 2, byURL["https://a.example"].VisitCount)
	assert.Equal(t, "Page A", byURL["https://a.example"].Title)

	out := mustRun(t, home, "history", "--search", "b.example")
	assert.Contains(t, out, "https://b.example")
	assert.NotContains(t, out, "https://a.example")

	mustRun(t, home, "history", "--rm", "https://b.example")
	out = mustRun(t, home, "history")
	assert.NotContains(t, out, "https://b.example")

	mustRun(t, home, "action", "neo://clear-history")
	assert.Empty(t, mustRun(t, home, "history"))
}

func TestHistoryFlagsExclusive(t *testing.T) {
	_, err := run(t, t.TempDir(), "history", "--clear", "--rm", "https://a.example")
	require.Error(t, err)
}

func TestBookmarkCommands(t *testing.T) {
	home := t.TempDir()
	assert.Equal(t, "bookmarked https://a.example\n", mustRun(t, home, "bookmark", "toggle", "https://a.example", "A"))
	assert.Equal(t, "true\n", mustRun(t, home, "bookmark", "has", "https://a.example"))
	mustRun(t, home, "bookmark", "add", "https://b.example", "B")
	assert.Contains(t, mustRun(t, home, "bookmark", "ls"), "https://b.example")

	assert.Equal(t, "removed https://a.example\n", mustRun(t, home, "bookmark", "toggle", "https://a.example"))
	assert.Equal(t, "false\n", mustRun(t, home, "bookmark", "has", "https://a.example"))

	mustRun(t, home, "action", "neo://delete-bookmark?url=https%3A%2F%2Fb.example")
	assert.Empty(t, mustRun(t, home, "bookmark", "ls"))

	_, err := run(t, home, "bookmark", "rm", "https://missing.example")
	require.Error(t, err)
}

func TestDownloadCommands(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, "dl")
	mustRun(t, home, "settings", "set", "download_directory", dir)

	out := mustRun(t, home, "download", "begin", "https://a.example/file.zip")
	id, p, ok := strings.Cut(strings.TrimSpace(out), "\t")
	require.True(t, ok, out)
	assert.Equal(t, "1", id)
	assert.Equal(t, filepath.Join(dir, "file.zip"), p)

	assert.Contains(t, mustRun(t, home, "download", "progress", id, "512", "1024"), "50%")
	assert.Contains(t, mustRun(t, home, "download", "finish", id), "completed")

	_, err := run(t, home, "download", "cancel", id)
	require.Error(t, err)

	out = mustRun(t, home, "download", "begin", "https://a.example/b.iso")
	id, _, _ = strings.Cut(strings.TrimSpace(out), "\t")
	assert.Contains(t, mustRun(t, home, "download", "finish", "--failed", id), "failed")

	out = mustRun(t, home, "download", "ls")
	assert.Contains(t, out, "file.zip")
	assert.Contains(t, out, "b.iso")

	_, err = run(t, home, "download", "progress", "x", "1", "2")
	require.Error(t, err)
}

func TestSettingsCommands(t *testing.T) {
	home := t.TempDir()
	assert.Equal(t, "#2D1B69\n", mustRun(t, home, "settings", "get", "theme_color"))

	mustRun(t, home, "settings", "set", "theme_color", "#112233")
	mustRun(t, home, "settings", "set", "restore_last_session", "true")
	assert.Equal(t, "#112233\n", mustRun(t, home, "settings", "get", "theme_color"))

	_, err := run(t, home, "settings", "set", "theme_color", "red")
	require.Error(t, err)
	_, err = run(t, home, "settings", "get", "nope")
	require.Error(t, err)

	var all map[string]any
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "settings", "ls", "--json")), &all))
	assert.Equal(t, true, all["restore_last_session"])

	mustRun(t, home, "session", "save", "https://a.example", "neo://history", "https://b.example")
	assert.Equal(t, "https://a.example\nhttps://b.example\n", mustRun(t, home, "session", "show"))

	mustRun(t, home, "settings", "reset")
	assert.Equal(t, "#2D1B69\n", mustRun(t, home, "settings", "get", "theme_color"))
	assert.Equal(t, filepath.Join(home, "browser_settings.json")+"\n", mustRun(t, home, "settings", "path"))
}

func TestPageCommand(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, "bookmark", "add", "https://a.example", "Alpha")

	out := mustRun(t, home, "page", "bookmarks")
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Alpha")

	assert.Contains(t, mustRun(t, home, "page", "neo://settings"), "form")

	_, err := run(t, home, "page", "nope")
	require.Error(t, err)
}

func TestActionErrors(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "action", "neo://nope")
	require.Error(t, err)
	_, err = run(t, home, "action", "https://a.example")
	require.Error(t, err)
}

func TestDBCommands(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "db", "info")
	require.ErrorIs(t, err, db.ErrDBNotFound)
	assert.NoFileExists(t, filepath.Join(home, "browser_data.db"))

	mustRun(t, home, "visit", "https://a.example")

	var info dbInfo
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "db", "info", "--json")), &info))
	assert.Equal(t, 1, info.Records["history"])
	assert.Empty(t, info.Backups)

	mustRun(t, home, "db", "vacuum")
	p := strings.TrimSpace(mustRun(t, home, "db", "backup"))
	assert.FileExists(t, p)
}

func TestConfigInit(t *testing.T) {
	home := t.TempDir()
	p := strings.TrimSpace(mustRun(t, home, "config", "init"))
	assert.Equal(t, filepath.Join(home, "config.yml"), p)
	assert.FileExists(t, p)

	_, err := run(t, home, "config", "init")
	require.Error(t, err)
	mustRun(t, home, "config", "init", "--force")
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "abc", shorten("abc", 10))
	assert.Equal(t, "abcd...", shorten("abcdefghij", 7))
}
