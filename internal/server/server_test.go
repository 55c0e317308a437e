package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateconpizza/neo/internal/db"
	"github.com/mateconpizza/neo/internal/scheme"
	"github.com/mateconpizza/neo/internal/settings"
	"github.com/mateconpizza/neo/internal/shell"
)

type nopOpener struct {
	copied []string
}

func (*nopOpener) OpenURL(string) error      { return nil }
func (*nopOpener) OpenFile(string) error     { return nil }
func (*nopOpener) ShowInFolder(string) error { return nil }
func (o *nopOpener) Copy(s string) error {
	o.copied = append(o.copied, s)
	return nil
}

type fixture struct {
	srv    *httptest.Server
	client *http.Client
	store  *db.SQLite
	sh     *shell.Shell
	opener *nopOpener
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	r, err := db.Open(t.Context(), filepath.Join(dir, "browser_data.db"))
	require.NoError(t, err)

	op := &nopOpener{}
	st := settings.Load(filepath.Join(dir, "browser_settings.json"))
	sh, err := shell.New(r, st, shell.WithOpener(op), shell.WithLinker(Linker{}))
	require.NoError(t, err)
	t.Cleanup(sh.Close)

	srv := httptest.NewServer(New("127.0.0.1:0", sh, WithVersion("test")).Handler())
	t.Cleanup(srv.Close)

	client := srv.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &fixture{srv: srv, client: client, store: r, sh: sh, opener: op}
}

func (f *fixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, f.srv.URL+path, http.NoBody)
	require.NoError(t, err)
	res, err := f.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })

	return res
}

func (f *fixture) post(t *testing.T, path string, form url.Values, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, f.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := f.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })

	return res
}

func TestRootRedirects(t *testing.T) {
	t.Parallel()
	f := setup(t)
	res := f.get(t, "/")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/history", res.Header.Get("Location"))
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	f := setup(t)
	res := f.get(t, "/healthz")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body healthzResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "test", body.Version)
}

func TestPages(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.sh.OnLoadFinished(t.Context(), "https://go.dev", "Go", true)

	for _, name := range scheme.Pages() {
		res := f.get(t, "/"+name)
		require.Equal(t, http.StatusOK, res.StatusCode, name)
		assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
	}

	res := f.get(t, "/history")
	doc, err := goquery.NewDocumentFromReader(res.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find(".history-item").Length())
	form := doc.Find("#clear-history").Closest("form")
	action, _ := form.Attr("action")
	method, _ := form.Attr("method")
	assert.Equal(t, "/action/clear-history", action)
	assert.Equal(t, "POST", method)
}

func TestUnknownPage(t *testing.T) {
	t.Parallel()
	f := setup(t)
	assert.Equal(t, http.StatusNotFound, f.get(t, "/nope").StatusCode)
}

func TestActionDeleteBookmark(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := t.Context()
	require.NoError(t, f.store.AddBookmark(ctx, "https://go.dev/?a=1", "Go"))

	res := f.post(t, "/action/delete-bookmark", url.Values{"url": {"https://go.dev/?a=1"}}, nil)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/bookmarks", res.Header.Get("Location"))

	ok, err := f.store.IsBookmarked(ctx, "https://go.dev/?a=1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActionSaveSettings(t *testing.T) {
	t.Parallel()
	f := setup(t)

	q := url.Values{}
	q.Add("theme_color", "#445566")
	q.Add("enable_javascript", "false")
	res := f.post(t, "/action/save-settings", q, http.Header{
		"Origin":         {f.srv.URL},
		"Sec-Fetch-Site": {"same-origin"},
	})
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/settings", res.Header.Get("Location"))
	assert.Equal(t, "#445566", f.sh.Settings().String(settings.KeyThemeColor))
	assert.False(t, f.sh.Settings().Bool(settings.KeyEnableJavascript))
}

func TestActionCopyURLRedirectsToReferer(t *testing.T) {
	t.Parallel()
	f := setup(t)

	form := url.Values{"url": {"https://go.dev"}}
	res := f.post(t, "/action/copy-url", form, http.Header{"Referer": {f.srv.URL + "/bookmarks"}})
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/bookmarks", res.Header.Get("Location"))
	assert.Equal(t, []string{"https://go.dev"}, f.opener.copied)

	// foreign referer is ignored
	res = f.post(t, "/action/copy-url", form, http.Header{"Referer": {"https://evil.example/x"}})
	assert.Equal(t, "/history", res.Header.Get("Location"))
}

func TestActionErrors(t *testing.T) {
	t.Parallel()
	f := setup(t)
	assert.Equal(t, http.StatusNotFound, f.post(t, "/action/launch", nil, nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, f.post(t, "/action/open-file", nil, nil).StatusCode)
}

func TestActionCrossSiteRejected(t *testing.T) {
	t.Parallel()
	f := setup(t)
	before := f.sh.Settings().String(settings.KeySearchEngine)

	form := url.Values{settings.KeySearchEngine: {"https://evil.example/?q="}}
	for _, h := range []http.Header{
		{"Origin": {"https://evil.example"}, "Sec-Fetch-Site": {"cross-site"}},
		{"Origin": {"https://evil.example"}},
		{"Sec-Fetch-Site": {"cross-site"}},
	} {
		res := f.post(t, "/action/save-settings", form, h)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	}

	assert.Equal(t, before, f.sh.Settings().String(settings.KeySearchEngine))
}

func TestActionRequiresPost(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := t.Context()
	f.sh.OnLoadFinished(ctx, "https://go.dev", "Go", true)

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		req, err := http.NewRequestWithContext(ctx, method, f.srv.URL+"/action/clear-history", http.NoBody)
		require.NoError(t, err)
		res, err := f.client.Do(req)
		require.NoError(t, err)
		_ = res.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode, method)
	}

	// query parameters are not read
	res := f.post(t, "/action/open-file?path=%2Fetc%2Fpasswd", nil, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	entries, err := f.store.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLinker(t *testing.T) {
	t.Parallel()
	l := Linker{}
	assert.Equal(t, "/action/clear-history", l.Action(scheme.New(scheme.ClearHistory)))
	assert.Equal(t, "/action/open-file", l.Action(scheme.New(scheme.OpenFile, "path", "/tmp/a")))
	assert.Equal(t, http.MethodPost, l.Method())
	assert.Equal(t, "/downloads", l.Page(scheme.PageDownloads))
}
