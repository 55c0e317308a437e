package shell

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mateconpizza/neo/internal/settings"
	"github.com/mateconpizza/neo/internal/sys/files"
)

// DownloadStarted registers a download the engine accepted and returns its
// id and the path the file should be saved to. The id is 0 when the store
// failed; later callbacks for id 0 are ignored.
func (s *Shell) DownloadStarted(ctx context.Context, u, suggestedName string) (int64, string) {
	dir := files.ExpandHomeDir(s.settings.String(settings.KeyDownloadDirectory))
	if err := files.MkdirAll(dir); err != nil {
		slog.Error("creating download directory", "path", dir, "error", err)
	}

	name := downloadName(suggestedName)
	p := uniquePath(filepath.Join(dir, name))

	id, err := s.store.BeginDownload(ctx, u, name, p)
	if err != nil {
		slog.Error("recording download", "url", u, "error", err)
		return 0, p
	}

	return id, p
}

// DownloadProgress records bytes received; total <= 0 means unknown.
func (s *Shell) DownloadProgress(ctx context.Context, id, received, total int64) {
	if id == 0 {
		return
	}

	if _, err := s.store.UpdateDownloadProgress(ctx, id, received, total); err != nil {
		slog.Error("updating download", "id", id, "error", err)
	}
}

// DownloadFinished records the end of a transfer.
func (s *Shell) DownloadFinished(ctx context.Context, id int64, success bool) {
	if id == 0 {
		return
	}

	if _, err := s.store.FinishDownload(ctx, id, success); err != nil {
		slog.Error("finishing download", "id", id, "error", err)
	}
}

// DownloadCanceled records a transfer the user aborted.
func (s *Shell) DownloadCanceled(ctx context.Context, id int64) {
	if id == 0 {
		return
	}

	if _, err := s.store.CancelDownload(ctx, id); err != nil {
		slog.Error("canceling download", "id", id, "error", err)
	}
}

// downloadName keeps the last element of the suggested name. Names that
// would leave the download directory become "download".
func downloadName(suggested string) string {
	name := filepath.Base(strings.TrimSpace(suggested))
	if name == "." || name == ".." || !filepath.IsLocal(name) {
		return "download"
	}

	return name
}

// uniquePath appends " (n)" before the extension until p does not exist.
func uniquePath(p string) string {
	if !files.Exists(p) {
		return p
	}

	ext := filepath.Ext(p)
	base := strings.TrimSuffix(p, ext)
	for i := 1; ; i++ {
		c := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if !files.Exists(c) {
			return c
		}
	}
}
