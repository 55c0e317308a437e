package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mateconpizza/neo/internal/config"
	"github.com/mateconpizza/neo/internal/db"
	"github.com/mateconpizza/neo/internal/settings"
	"github.com/mateconpizza/neo/internal/shell"
	"github.com/mateconpizza/neo/internal/sys/terminal"
)

// loadSettings loads browser_settings.json from the application home.
func loadSettings() *settings.Store {
	return settings.Load(config.App.Path.Settings)
}

// openStore opens the database, falling back to the temp dir.
func openStore(ctx context.Context) (*db.SQLite, error) {
	return db.OpenWithFallback(ctx, config.App.Path.Database, config.FallbackDBName)
}

// openExisting opens the database for maintenance; it is never created.
func openExisting() (*db.SQLite, error) {
	return db.New(config.App.Path.Database)
}

// openShell opens the store and settings and returns the controller. The
// caller must Close it.
func openShell(ctx context.Context, opts ...shell.OptFn) (*shell.Shell, error) {
	r, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	opts = append([]shell.OptFn{shell.WithHistoryLimit(config.App.File.Pages.HistoryLimit)}, opts...)
	sh, err := shell.New(r, loadSettings(), opts...)
	if err != nil {
		r.Close()
		return nil, err
	}

	return sh, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// shorten truncates s to fit n runes.
func shorten(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}

	return string(r[:n-3]) + "..."
}

// lineWidth is the room left for text after a fixed prefix.
func lineWidth(prefix int) int {
	return max(terminal.Width()-prefix, 20)
}

// parseTitle joins the optional trailing args into a title.
func parseTitle(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
