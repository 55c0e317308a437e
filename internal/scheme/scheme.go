// Package scheme parses and builds the internal neo:// action URLs that
// the internal pages use to talk back to the shell.
package scheme

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Scheme is the internal URI scheme.
const Scheme = "neo"

// Name identifies an action.
type Name string

// Actions.
const (
	ClearHistory   Name = "clear-history"
	DeleteBookmark Name = "delete-bookmark"
	OpenFile       Name = "open-file"
	ShowInFolder   Name = "show-in-folder"
	SaveSettings   Name = "save-settings"
	ResetSettings  Name = "reset-settings"
	CopyURL        Name = "copy-url"
)

// Internal pages.
const (
	PageHistory   = "history"
	PageBookmarks = "bookmarks"
	PageDownloads = "downloads"
	PageSettings  = "settings"
)

type actionSpec struct {
	required string
	page     string
}

var actions = map[Name]actionSpec{
	ClearHistory:   {page: PageHistory},
	DeleteBookmark: {required: "url", page: PageBookmarks},
	OpenFile:       {required: "path", page: PageDownloads},
	ShowInFolder:   {required: "path", page: PageDownloads},
	SaveSettings:   {page: PageSettings},
	ResetSettings:  {page: PageSettings},
	CopyURL:        {required: "url"},
}

// Pages returns the internal page names.
func Pages() []string {
	return []string{PageHistory, PageBookmarks, PageDownloads, PageSettings}
}

// IsPage reports whether name is an internal page.
func IsPage(name string) bool {
	switch name {
	case PageHistory, PageBookmarks, PageDownloads, PageSettings:
		return true
	}

	return false
}

// Action is a parsed internal action.
type Action struct {
	Name   Name
	Params url.Values
}

// New builds an action from key/value pairs. A trailing key without value
// is ignored.
func New(name Name, kv ...string) Action {
	p := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Add(kv[i], kv[i+1])
	}

	return Action{Name: name, Params: p}
}

// Get returns the first value for key.
func (a Action) Get(key string) string {
	return a.Params.Get(key)
}

// Last returns the last value for key. Forms that pair a hidden "false"
// input with a checkbox submit both; the checkbox comes last.
func (a Action) Last(key string) string {
	v := a.Params[key]
	if len(v) == 0 {
		return ""
	}

	return v[len(v)-1]
}

// Keys returns the parameter names in sorted order.
func (a Action) Keys() []string {
	keys := make([]string, 0, len(a.Params))
	for k := range a.Params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

// URL returns the canonical neo://name?query form.
func (a Action) URL() string {
	u := url.URL{Scheme: Scheme, Host: string(a.Name)}
	if len(a.Params) > 0 {
		u.RawQuery = a.Params.Encode()
	}

	return u.String()
}

// Validate checks that the action is known and carries its required
// parameter.
func (a Action) Validate() error {
	spec, ok := actions[a.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Name)
	}

	if spec.required != "" && strings.TrimSpace(a.Get(spec.required)) == "" {
		return fmt.Errorf("%w: %s requires %q", ErrMissingParam, a.Name, spec.required)
	}

	return nil
}

// Parse parses neo://action?k=v and neo:action?k=v.
func Parse(raw string) (Action, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Action{}, fmt.Errorf("%w: %w", ErrScheme, err)
	}

	if u.Scheme != Scheme {
		return Action{}, fmt.Errorf("%w: %q", ErrScheme, raw)
	}

	a := Action{Name: Name(strings.ToLower(target(u))), Params: u.Query()}
	if err := a.Validate(); err != nil {
		return Action{}, err
	}

	return a, nil
}

// ParsePage returns the page name of neo://history and friends.
func ParsePage(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != Scheme {
		return "", false
	}

	name := strings.ToLower(target(u))
	if !IsPage(name) {
		return "", false
	}

	return name, true
}

// PageURL returns the neo:// URL of an internal page.
func PageURL(name string) string {
	return Scheme + "://" + name
}

// Page returns the internal page to show after the action ran. Empty when
// the action does not belong to a page.
func Page(a Action) string {
	return actions[a.Name].page
}

// IsInternal reports whether raw uses the internal scheme or about:.
func IsInternal(raw string) bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(s, Scheme+":") || strings.HasPrefix(s, "about:")
}

// target returns the action or page part of u: the host for neo://x, the
// opaque part for neo:x and the path for neo:///x.
func target(u *url.URL) string {
	switch {
	case u.Host != "":
		return u.Host
	case u.Opaque != "":
		return u.Opaque
	default:
		return strings.Trim(u.Path, "/")
	}
}
