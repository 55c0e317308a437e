//nolint:paralleltest //test
package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkToggle(t *testing.T) {
	r := setupTestDB(t)
	ctx := t.Context()
	u := "https://www.example.com"

	ok, err := r.IsBookmarked(ctx, u)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.AddBookmark(ctx, u, "Example"))
	ok, err = r.IsBookmarked(ctx, u)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, r.RemoveBookmark(ctx, u))
	ok, err = r.IsBookmarked(ctx, u)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddBookmarkReplaces(t *testing.T) {
	r := setupTestDB(t)
	ctx := t.Context()
	u := "https://go.dev"

	require.NoError(t, r.AddBookmark(ctx, u, "Old"))
	old, err := r.Bookmark(ctx, u)
	require.NoError(t, err)

	require.NoError(t, r.AddBookmark(ctx, u, "New"))
	assert.Equal(t, 1, r.Count(ctx, tableBookmarksName))

	b, err := r.Bookmark(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, "New", b.Title)
	assert.True(t, b.Created().After(old.Created()))
}

func TestRemoveMissingBookmark(t *testing.T) {
	r := setupTestDB(t)
	require.ErrorIs(t, r.RemoveBookmark(t.Context(), "https://nope.example"), ErrRecordNotFound)
}

func TestAddBookmarkEmptyURL(t *testing.T) {
	r := setupTestDB(t)
	require.ErrorIs(t, r.AddBookmark(t.Context(), "", "x"), ErrURLEmpty)
}

func TestBookmarksOrder(t *testing.T) {
	r := setupTestDB(t)
	ctx := t.Context()
	urls := []string{"https://a.example", "https://b.example", "https://c.example"}
	for _, u := range urls {
		require.NoError(t, r.AddBookmark(ctx, u, u))
	}

	bs, err := r.Bookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, bs, 3)
	assert.Equal(t, "https://c.example", bs[0].URL)
	assert.Equal(t, "https://a.example", bs[2].URL)
}

func TestBookmarksEmpty(t *testing.T) {
	r := setupTestDB(t)
	bs, err := r.Bookmarks(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, bs)
	assert.Empty(t, bs)
}
