package shell

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mateconpizza/neo/internal/bookmark"
	"github.com/mateconpizza/neo/internal/download"
	"github.com/mateconpizza/neo/internal/history"
	"github.com/mateconpizza/neo/internal/page"
	"github.com/mateconpizza/neo/internal/scheme"
	"github.com/mateconpizza/neo/internal/sys/files"
)

// Page renders the internal page name from the current state.
func (s *Shell) Page(ctx context.Context, name string, w io.Writer) error {
	var data any
	switch name {
	case scheme.PageHistory:
		entries, err := s.store.History(ctx, s.historyLimit)
		if err != nil {
			slog.Error("loading history", "error", err)
			entries = []*history.Entry{}
		}
		data = page.NewHistoryView(s.settings, entries, s.historyLimit)

	case scheme.PageBookmarks:
		bs, err := s.store.Bookmarks(ctx)
		if err != nil {
			slog.Error("loading bookmarks", "error", err)
			bs = []*bookmark.Bookmark{}
		}
		data = page.NewBookmarksView(s.settings, bs)

	case scheme.PageDownloads:
		ds, err := s.store.Downloads(ctx)
		if err != nil {
			slog.Error("loading downloads", "error", err)
			ds = []*download.Record{}
		}
		data = page.NewDownloadsView(s.settings, ds)

	case scheme.PageSettings:
		data = page.NewSettingsView(s.settings)

	default:
		return fmt.Errorf("%w: %q", page.ErrUnknownPage, name)
	}

	return s.renderer.Render(w, name, data)
}

// ShowPage renders page name to a file in dir and opens it with the
// desktop. It returns the file path.
func (s *Shell) ShowPage(ctx context.Context, name, dir string) (string, error) {
	if err := files.MkdirAll(dir); err != nil {
		return "", err
	}

	p := filepath.Join(dir, "neo-"+name+".html")
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("creating page file: %w", err)
	}

	if err := s.Page(ctx, name, f); err != nil {
		_ = f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing page file: %w", err)
	}

	if err := s.opener.OpenFile(p); err != nil {
		return p, fmt.Errorf("opening page: %w", err)
	}

	return p, nil
}
