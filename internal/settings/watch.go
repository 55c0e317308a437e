package settings

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mateconpizza/neo/internal/sys/files"
)

// Watch reloads the store whenever its file changes on disk, until ctx is
// done. The parent directory is watched so atomic renames are seen.
func (s *Store) Watch(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := files.MkdirAll(dir); err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}

	defer func() {
		if err := w.Close(); err != nil {
			slog.Error("closing settings watcher", "error", err)
		}
	}()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch settings %q: %w", dir, err)
	}

	slog.Debug("watching settings", "path", s.path)
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				s.Reload()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("settings watcher", "error", err)
		}
	}
}
