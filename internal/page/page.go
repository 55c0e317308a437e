// Package page renders the internal history, bookmarks, downloads and
// settings pages.
package page

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mateconpizza/neo/internal/download"
	"github.com/mateconpizza/neo/internal/scheme"
	"github.com/mateconpizza/neo/internal/timestamp"
)

//go:embed templates/*.html
var templatesFS embed.FS

var ErrUnknownPage = errors.New("unknown page")

// Linker builds the links a page uses for actions and navigation. Actions
// are rendered as forms submitted with Method; their parameters are form
// fields.
type Linker interface {
	Action(a scheme.Action) string
	Page(name string) string
	Method() string
}

// NeoLinker links with neo:// URLs, for pages shown inside the browser.
// The engine intercepts the neo:// navigation a GET form produces.
type NeoLinker struct{}

func (NeoLinker) Action(a scheme.Action) string { return a.URL() }
func (NeoLinker) Page(name string) string       { return scheme.PageURL(name) }
func (NeoLinker) Method() string                { return "get" }

// Renderer renders internal pages.
type Renderer struct {
	pages map[string]*template.Template
	link  Linker
}

// OptFn configures a Renderer.
type OptFn func(*Renderer)

// WithLinker sets the linker; the default is NeoLinker.
func WithLinker(l Linker) OptFn {
	return func(r *Renderer) {
		r.link = l
	}
}

// New parses the embedded templates.
func New(opts ...OptFn) (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template, len(scheme.Pages())),
		link:  NeoLinker{},
	}
	for _, fn := range opts {
		fn(r)
	}

	for _, name := range scheme.Pages() {
		t, err := template.New(name).
			Funcs(r.funcs()).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %q template: %w", name, err)
		}

		r.pages[name] = t
	}

	return r, nil
}

// Render writes page name with data to w. Nothing is written on error.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %q: %w", name, err)
	}

	slog.Debug("page rendered", "name", name, "bytes", buf.Len())
	_, err := buf.WriteTo(w)

	return err
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"action": func(name string) template.URL {
			//nolint:gosec //fixed action names
			return template.URL(r.link.Action(scheme.New(scheme.Name(name))))
		},
		"pageURL": func(name string) template.URL {
			return template.URL(r.link.Page(name)) //nolint:gosec //fixed page names
		},
		"method": func() string { return r.link.Method() },
		"pages":  scheme.Pages,
		"title":  func(name string) string { return titles[name] },
		"href":   href,
		"size":   download.FormatSize,
		"date":   date,
		"ago":    ago,
		"upper":  capitalize,
	}
}

// href lets http(s) and file URLs through; anything else becomes "#".
func href(s string) template.URL {
	u, err := url.Parse(s)
	if err != nil {
		return "#"
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "file":
		return template.URL(u.String()) //nolint:gosec //scheme checked
	default:
		return "#"
	}
}

// date formats a stored timestamp in local time.
func date(s string) string {
	t, err := timestamp.Parse(s)
	if err != nil || t.IsZero() {
		return s
	}

	return t.Local().Format("2006-01-02 15:04")
}

func ago(s string) string {
	t, err := timestamp.Parse(s)
	if err != nil || t.IsZero() {
		return ""
	}

	return humanize.Time(t)
}

func capitalize(s fmt.Stringer) string {
	v := s.String()
	if v == "" {
		return v
	}

	return strings.ToUpper(v[:1]) + v[1:]
}
