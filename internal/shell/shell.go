// Package shell is the controller between the web engine and the
// persistent state: it records visits and downloads, toggles bookmarks,
// runs internal actions and renders the internal pages.
//
// Store failures never reach the caller. They are logged and the shell
// carries on with empty results.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/mateconpizza/neo/internal/bookmark"
	"github.com/mateconpizza/neo/internal/download"
	"github.com/mateconpizza/neo/internal/history"
	"github.com/mateconpizza/neo/internal/page"
	"github.com/mateconpizza/neo/internal/scheme"
	"github.com/mateconpizza/neo/internal/settings"
	"github.com/mateconpizza/neo/internal/sys"
)

const defaultHistoryLimit = 100

// Store is the persistence the shell drives.
type Store interface {
	RecordVisit(ctx context.Context, bURL, title string) error
	History(ctx context.Context, limit int) ([]*history.Entry, error)
	ClearHistory(ctx context.Context) error
	AddBookmark(ctx context.Context, bURL, title string) error
	RemoveBookmark(ctx context.Context, bURL string) error
	IsBookmarked(ctx context.Context, bURL string) (bool, error)
	Bookmarks(ctx context.Context) ([]*bookmark.Bookmark, error)
	BeginDownload(ctx context.Context, bURL, filename, filepath string) (int64, error)
	UpdateDownloadProgress(ctx context.Context, id, downloaded, size int64) (*download.Record, error)
	FinishDownload(ctx context.Context, id int64, success bool) (*download.Record, error)
	CancelDownload(ctx context.Context, id int64) (*download.Record, error)
	Downloads(ctx context.Context) ([]*download.Record, error)
	Close()
}

// Shell is the controller handle.
type Shell struct {
	store        Store
	settings     *settings.Store
	opener       sys.Opener
	renderer     *page.Renderer
	linker       page.Linker
	historyLimit int
}

type OptFn func(*Shell)

// WithOpener replaces the desktop opener.
func WithOpener(o sys.Opener) OptFn {
	return func(s *Shell) {
		s.opener = o
	}
}

// WithLinker sets the links the internal pages use.
func WithLinker(l page.Linker) OptFn {
	return func(s *Shell) {
		s.linker = l
	}
}

// WithHistoryLimit caps the history page.
func WithHistoryLimit(n int) OptFn {
	return func(s *Shell) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// New returns a shell over store and st.
func New(store Store, st *settings.Store, opts ...OptFn) (*Shell, error) {
	s := &Shell{
		store:        store,
		settings:     st,
		opener:       sys.Desktop{},
		linker:       page.NeoLinker{},
		historyLimit: defaultHistoryLimit,
	}
	for _, fn := range opts {
		fn(s)
	}

	r, err := page.New(page.WithLinker(s.linker))
	if err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}
	s.renderer = r

	return s, nil
}

// Close releases the store.
func (s *Shell) Close() {
	s.store.Close()
}

// Settings returns the settings store.
func (s *Shell) Settings() *settings.Store {
	return s.settings
}

var localhostRe = regexp.MustCompile(`^(localhost|127\.0\.0\.1)(:\d+)?(/.*)?$`)

// Resolve turns address bar input into a URL. URLs with a known scheme are
// kept, host-like input gets https:// and anything else is searched.
// Empty input yields the homepage.
func (s *Shell) Resolve(input string) string {
	in := strings.TrimSpace(input)
	if in == "" {
		return s.settings.String(settings.KeyHomepage)
	}

	if u, err := url.Parse(in); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file", "about", scheme.Scheme:
			return in
		}
	}

	if !strings.ContainsAny(in, " \t") {
		if localhostRe.MatchString(in) {
			return "http://" + in
		}

		if strings.Contains(in, ".") {
			return "https://" + in
		}
	}

	return s.settings.String(settings.KeySearchEngine) + url.QueryEscape(in)
}

// recordable reports whether a loaded URL belongs in the history.
func recordable(u string) bool {
	if strings.TrimSpace(u) == "" || scheme.IsInternal(u) {
		return false
	}

	l := strings.ToLower(u)

	return !strings.HasPrefix(l, "data:") && !strings.HasPrefix(l, "chrome:")
}

// OnLoadFinished records a visit when a page finished loading.
func (s *Shell) OnLoadFinished(ctx context.Context, u, title string, ok bool) {
	if !ok || !recordable(u) {
		slog.Debug("visit not recorded", "url", u, "ok", ok)
		return
	}

	if err := s.store.RecordVisit(ctx, u, title); err != nil {
		slog.Error("recording visit", "url", u, "error", err)
	}
}

// IsBookmarked reports whether u is bookmarked; false on store errors.
func (s *Shell) IsBookmarked(ctx context.Context, u string) bool {
	ok, err := s.store.IsBookmarked(ctx, u)
	if err != nil {
		slog.Error("checking bookmark", "url", u, "error", err)
		return false
	}

	return ok
}

// ToggleBookmark adds or removes the bookmark for u and returns whether u
// is bookmarked afterwards.
func (s *Shell) ToggleBookmark(ctx context.Context, u, title string) bool {
	if s.IsBookmarked(ctx, u) {
		if err := s.store.RemoveBookmark(ctx, u); err != nil {
			slog.Error("removing bookmark", "url", u, "error", err)
			return true
		}

		return false
	}

	if err := s.store.AddBookmark(ctx, u, title); err != nil {
		slog.Error("adding bookmark", "url", u, "error", err)
		return false
	}

	return true
}
