package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		raw   string
		want  Name
		param string
		value string
	}{
		{name: "authority form", raw: "neo://clear-history", want: ClearHistory},
		{name: "opaque form", raw: "neo:clear-history", want: ClearHistory},
		{name: "path form", raw: "neo:///clear-history", want: ClearHistory},
		{name: "trailing slash", raw: "neo://clear-history/", want: ClearHistory},
		{name: "upper case", raw: "NEO://Clear-History", want: ClearHistory},
		{
			name: "delete bookmark", raw: "neo://delete-bookmark?url=https%3A%2F%2Fgo.dev%2F%3Fa%3D1",
			want: DeleteBookmark, param: "url", value: "https://go.dev/?a=1",
		},
		{
			name: "open file opaque", raw: "neo:open-file?path=%2Ftmp%2Fa+b.zip",
			want: OpenFile, param: "path", value: "/tmp/a b.zip",
		},
		{
			name: "show in folder", raw: "neo://show-in-folder?path=/tmp/x",
			want: ShowInFolder, param: "path", value: "/tmp/x",
		},
		{
			name: "save settings", raw: "neo://save-settings?theme_color=%23112233",
			want: SaveSettings, param: "theme_color", value: "#112233",
		},
		{name: "copy url", raw: "neo://copy-url?url=https://go.dev", want: CopyURL, param: "url", value: "https://go.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Name)
			if tt.param != "" {
				assert.Equal(t, tt.value, a.Get(tt.param))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want error
	}{
		{raw: "https://go.dev", want: ErrScheme},
		{raw: "about:blank", want: ErrScheme},
		{raw: "neo://launch-missiles", want: ErrUnknownAction},
		{raw: "neo://", want: ErrUnknownAction},
		{raw: "neo://delete-bookmark", want: ErrMissingParam},
		{raw: "neo://delete-bookmark?url=", want: ErrMissingParam},
		{raw: "neo://open-file?file=/tmp/x", want: ErrMissingParam},
		{raw: "neo://copy-url", want: ErrMissingParam},
		{raw: "%zz", want: ErrScheme},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.raw)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestURLRoundTrip(t *testing.T) {
	t.Parallel()
	a := New(DeleteBookmark, "url", "https://example.com/a?b=c&d=e")
	assert.Equal(t, "neo://delete-bookmark?url=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc%26d%3De", a.URL())

	got, err := Parse(a.URL())
	require.NoError(t, err)
	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, "https://example.com/a?b=c&d=e", got.Get("url"))

	assert.Equal(t, "neo://clear-history", New(ClearHistory).URL())
}

func TestNewIgnoresDanglingKey(t *testing.T) {
	t.Parallel()
	a := New(CopyURL, "url", "https://go.dev", "orphan")
	assert.Equal(t, []string{"url"}, a.Keys())
}

func TestLast(t *testing.T) {
	t.Parallel()
	a, err := Parse("neo://save-settings?enable_javascript=false&enable_javascript=true&homepage=https://go.dev")
	require.NoError(t, err)
	assert.Equal(t, "false", a.Get("enable_javascript"))
	assert.Equal(t, "true", a.Last("enable_javascript"))
	assert.Empty(t, a.Last("missing"))
	assert.Equal(t, []string{"enable_javascript", "homepage"}, a.Keys())
}

func TestPage(t *testing.T) {
	t.Parallel()
	assert.Equal(t, PageHistory, Page(New(ClearHistory)))
	assert.Equal(t, PageBookmarks, Page(New(DeleteBookmark, "url", "x")))
	assert.Equal(t, PageDownloads, Page(New(OpenFile, "path", "x")))
	assert.Equal(t, PageDownloads, Page(New(ShowInFolder, "path", "x")))
	assert.Equal(t, PageSettings, Page(New(SaveSettings)))
	assert.Equal(t, PageSettings, Page(New(ResetSettings)))
	assert.Empty(t, Page(New(CopyURL, "url", "x")))
}

func TestParsePage(t *testing.T) {
	t.Parallel()
	for _, p := range Pages() {
		got, ok := ParsePage(PageURL(p))
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}

	_, ok := ParsePage("neo://clear-history")
	assert.False(t, ok)
	_, ok = ParsePage("https://history")
	assert.False(t, ok)
}

func TestIsInternal(t *testing.T) {
	t.Parallel()
	assert.True(t, IsInternal("neo://history"))
	assert.True(t, IsInternal("NEO:clear-history"))
	assert.True(t, IsInternal("about:blank"))
	assert.False(t, IsInternal("https://neo.example"))
	assert.False(t, IsInternal("neon://x"))
}
