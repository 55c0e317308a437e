package shell

import (
	"context"
	"log/slog"

	"github.com/mateconpizza/neo/internal/scheme"
	"github.com/mateconpizza/neo/internal/settings"
)

// StartupTabs returns the URLs to open on startup: the last session when
// restoring is enabled and it is not empty, otherwise the homepage.
func (s *Shell) StartupTabs() []string {
	if s.settings.Bool(settings.KeyRestoreLastSession) {
		if tabs := s.settings.Strings(settings.KeyLastSessionTabs); len(tabs) > 0 {
			return tabs
		}
	}

	return []string{s.settings.String(settings.KeyHomepage)}
}

// SaveSession stores the open tabs, leaving out internal pages.
func (s *Shell) SaveSession(urls []string) {
	tabs := make([]string, 0, len(urls))
	for _, u := range urls {
		if recordable(u) {
			tabs = append(tabs, u)
		}
	}

	if err := s.settings.Set(settings.KeyLastSessionTabs, tabs); err != nil {
		slog.Error("saving session", "error", err)
	}
}

// Open resolves input, opens it with the desktop and records the visit.
// Internal page URLs are rendered to dir and opened as files.
func (s *Shell) Open(ctx context.Context, input, title, dir string) (string, error) {
	u := s.Resolve(input)
	if name, ok := scheme.ParsePage(u); ok {
		return s.ShowPage(ctx, name, dir)
	}

	if err := s.opener.OpenURL(u); err != nil {
		slog.Error("opening url", "url", u, "error", err)
		return u, err
	}

	s.OnLoadFinished(ctx, u, title, true)

	return u, nil
}
