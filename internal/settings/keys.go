package settings

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/mateconpizza/neo/internal/sys/files"
)

// Known setting keys.
const (
	KeyThemeColor         = "theme_color"
	KeySearchEngine       = "search_engine"
	KeyHomepage           = "homepage"
	KeyDownloadDirectory  = "download_directory"
	KeyShowBookmarksBar   = "show_bookmarks_bar"
	KeyEnableJavascript   = "enable_javascript"
	KeyRestoreLastSession = "restore_last_session"
	KeyLastSessionTabs    = "last_session_tabs"
)

type kind int

const (
	kindString kind = iota
	kindBool
	kindList
)

func (k kind) String() string {
	switch k {
	case kindBool:
		return "bool"
	case kindList:
		return "list"
	default:
		return "string"
	}
}

type keySpec struct {
	kind     kind
	def      func() any
	validate func(string) error
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// keyOrder is the order keys are listed in.
var keyOrder = []string{
	KeyThemeColor,
	KeySearchEngine,
	KeyHomepage,
	KeyDownloadDirectory,
	KeyShowBookmarksBar,
	KeyEnableJavascript,
	KeyRestoreLastSession,
	KeyLastSessionTabs,
}

var known = map[string]keySpec{
	KeyThemeColor: {
		kind:     kindString,
		def:      func() any { return "#2D1B69" },
		validate: validateColor,
	},
	KeySearchEngine: {
		kind:     kindString,
		def:      func() any { return "https://www.google.com/search?q=" },
		validate: validateWebURL,
	},
	KeyHomepage: {
		kind:     kindString,
		def:      func() any { return "https://www.google.com" },
		validate: validateWebURL,
	},
	KeyDownloadDirectory: {
		kind:     kindString,
		def:      func() any { return files.ExpandHomeDir("~/Downloads") },
		validate: validateNotEmpty,
	},
	KeyShowBookmarksBar:   {kind: kindBool, def: func() any { return true }},
	KeyEnableJavascript:   {kind: kindBool, def: func() any { return true }},
	KeyRestoreLastSession: {kind: kindBool, def: func() any { return false }},
	KeyLastSessionTabs:    {kind: kindList, def: func() any { return []string{} }},
}

// Keys returns the known keys in display order.
func Keys() []string {
	return append([]string(nil), keyOrder...)
}

// IsKnown reports whether key is a known setting.
func IsKnown(key string) bool {
	_, ok := known[key]
	return ok
}

// IsBool reports whether key holds a boolean.
func IsBool(key string) bool {
	return known[key].kind == kindBool
}

// Defaults returns a fresh copy of the compiled-in defaults.
func Defaults() map[string]any {
	m := make(map[string]any, len(known))
	for k, s := range known {
		m[k] = s.def()
	}

	return m
}

// SearchEngines are the choices offered on the settings page.
var SearchEngines = []SearchEngine{
	{Name: "Google", Prefix: "https://www.google.com/search?q="},
	{Name: "Bing", Prefix: "https://www.bing.com/search?q="},
	{Name: "DuckDuckGo", Prefix: "https://duckduckgo.com/?q="},
	{Name: "Yahoo", Prefix: "https://search.yahoo.com/search?p="},
}

// SearchEngine is a named search URL prefix.
type SearchEngine struct {
	Name   string
	Prefix string
}

func validateColor(s string) error {
	if !hexColorRe.MatchString(s) {
		return fmt.Errorf("%w: %q is not #RRGGBB", ErrInvalidValue, s)
	}

	return nil
}

func validateWebURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidValue, s)
	}

	return nil
}

func validateNotEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: empty value", ErrInvalidValue)
	}

	return nil
}
