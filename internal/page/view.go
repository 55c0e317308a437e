package page

import (
	"html/template"
	"regexp"

	"github.com/mateconpizza/neo/internal/bookmark"
	"github.com/mateconpizza/neo/internal/download"
	"github.com/mateconpizza/neo/internal/history"
	"github.com/mateconpizza/neo/internal/scheme"
	"github.com/mateconpizza/neo/internal/settings"
)

const defaultTheme = "#2D1B69"

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var titles = map[string]string{
	scheme.PageHistory:   "History",
	scheme.PageBookmarks: "Bookmarks",
	scheme.PageDownloads: "Downloads",
	scheme.PageSettings:  "Settings",
}

// Settings is the read side of the settings store.
type Settings interface {
	String(key string) string
	Bool(key string) bool
}

// Common is shared by every page.
type Common struct {
	Name  string
	Title string
	Theme template.CSS
}

func newCommon(name, color string) Common {
	if !hexColorRe.MatchString(color) {
		color = defaultTheme
	}

	return Common{
		Name:  name,
		Title: titles[name],
		Theme: template.CSS(color), //nolint:gosec //validated hex color
	}
}

// HistoryView is the data of the history page.
type HistoryView struct {
	Common
	Entries []*history.Entry
	Limit   int
}

// NewHistoryView returns the history page data.
func NewHistoryView(s Settings, entries []*history.Entry, limit int) *HistoryView {
	return &HistoryView{
		Common:  newCommon(scheme.PageHistory, s.String(settings.KeyThemeColor)),
		Entries: entries,
		Limit:   limit,
	}
}

// BookmarksView is the data of the bookmarks page.
type BookmarksView struct {
	Common
	Bookmarks []*bookmark.Bookmark
}

// NewBookmarksView returns the bookmarks page data.
func NewBookmarksView(s Settings, bs []*bookmark.Bookmark) *BookmarksView {
	return &BookmarksView{
		Common:    newCommon(scheme.PageBookmarks, s.String(settings.KeyThemeColor)),
		Bookmarks: bs,
	}
}

// DownloadsView is the data of the downloads page.
type DownloadsView struct {
	Common
	Downloads []*download.Record
}

// NewDownloadsView returns the downloads page data.
func NewDownloadsView(s Settings, ds []*download.Record) *DownloadsView {
	return &DownloadsView{
		Common:    newCommon(scheme.PageDownloads, s.String(settings.KeyThemeColor)),
		Downloads: ds,
	}
}

// EngineOption is one choice of the search engine select.
type EngineOption struct {
	Name     string
	Prefix   string
	Selected bool
}

// SettingsView is the data of the settings page.
type SettingsView struct {
	Common
	ThemeColor         string
	Engines            []EngineOption
	Homepage           string
	DownloadDirectory  string
	EnableJavascript   bool
	ShowBookmarksBar   bool
	RestoreLastSession bool
}

// NewSettingsView returns the settings page data. A search engine that is
// not one of the presets is offered as "Custom".
func NewSettingsView(s Settings) *SettingsView {
	color := s.String(settings.KeyThemeColor)
	current := s.String(settings.KeySearchEngine)

	engines := make([]EngineOption, 0, len(settings.SearchEngines)+1)
	found := false
	for _, e := range settings.SearchEngines {
		sel := e.Prefix == current
		found = found || sel
		engines = append(engines, EngineOption{Name: e.Name, Prefix: e.Prefix, Selected: sel})
	}
	if !found && current != "" {
		engines = append(engines, EngineOption{Name: "Custom", Prefix: current, Selected: true})
	}

	c := newCommon(scheme.PageSettings, color)

	return &SettingsView{
		Common:             c,
		ThemeColor:         string(c.Theme),
		Engines:            engines,
		Homepage:           s.String(settings.KeyHomepage),
		DownloadDirectory:  s.String(settings.KeyDownloadDirectory),
		EnableJavascript:   s.Bool(settings.KeyEnableJavascript),
		ShowBookmarksBar:   s.Bool(settings.KeyShowBookmarksBar),
		RestoreLastSession: s.Bool(settings.KeyRestoreLastSession),
	}
}
