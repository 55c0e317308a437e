//nolint:paralleltest //test
package db

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPopulatedHistory(t *testing.T, n int) *SQLite {
	t.Helper()
	r := setupTestDB(t)
	for i := range n {
		u := fmt.Sprintf("https://www.example%d.com", i)
		require.NoError(t, r.RecordVisit(t.Context(), u, fmt.Sprintf("Title %d", i)))
	}

	return r
}

func TestRecordVisitTwice(t *testing.T) {
	r := setupTestDB(t)
	ctx := t.Context()
	u := "https://www.example.com"

	require.NoError(t, r.RecordVisit(ctx, u, "First"))
	first, err := r.HistoryEntry(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, 1, first.VisitCount)

	require.NoError(t, r.RecordVisit(ctx, u, "Second"))
	assert.Equal(t, 1, r.Count(ctx, tableHistoryName))

	e, err := r.HistoryEntry(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, 2, e.VisitCount)
	assert.Equal(t, "Second", e.Title)
	assert.True(t, e.LastVisitTime().After(first.LastVisitTime()))
	assert.Equal(t, first.ID, e.ID)
}

func TestRecordVisitManyKeepsCount(t *testing.T) {
	r := setupTestDB(t)
	ctx := t.Context()
	for range 5 {
		require.NoError(t, r.RecordVisit(ctx, "https://go.dev", "Go"))
	}

	e, err := r.HistoryEntry(ctx, "https://go.dev")
	require.NoError(t, err)
	assert.Equal(t, 5, e.VisitCount)
}

func TestRecordVisitEmptyURL(t *testing.T) {
	r := setupTestDB(t)
	require.ErrorIs(t, r.RecordVisit(t.Context(), "  ", "x"), ErrURLEmpty)
}

func TestHistoryLimitAndOrder(t *testing.T) {
	r := testPopulatedHistory(t, 10)
	ctx := t.Context()
	// revisit an old entry so it becomes the newest
	require.NoError(t, r.RecordVisit(ctx, "https://www.example2.com", "Title 2"))

	for _, limit := range []int{0, 1, 3, 10, 50} {
		entries, err := r.History(ctx, limit)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(entries), limit)
		assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
			return entries[i].LastVisit > entries[j].LastVisit
		}), "entries must be newest first")
	}

	entries, err := r.History(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "https://www.example2.com", entries[0].URL)
	assert.Equal(t, 2, entries[0].VisitCount)
	assert.Equal(t, "https://www.example9.com", entries[1].URL)

	all, err := r.History(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestSearchHistory(t *testing.T) {
	r := testPopulatedHistory(t, 3)
	ctx := t.Context()
	require.NoError(t, r.RecordVisit(ctx, "https://go.dev/doc", "Documentation"))
	require.NoError(t, r.RecordVisit(ctx, "https://go.dev/doc", "Documentation"))

	got, err := r.SearchHistory(ctx, "EXAMPLE", 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = r.SearchHistory(ctx, "documentation", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://go.dev/doc", got[0].URL)

	_, err = r.SearchHistory(ctx, "x", 0)
	require.ErrorIs(t, err, ErrInvalidLimit)
}

func TestSearchHistoryLiteralWildcards(t *testing.T) {
	r := setupTestDB(t)
	ctx := t.Context()
	require.NoError(t, r.RecordVisit(ctx, "https://a.example/100%25", "100% done"))
	require.NoError(t, r.RecordVisit(ctx, "https://a.example/1000", "1000 items"))
	require.NoError(t, r.RecordVisit(ctx, "https://a.example/a_b", "a_b"))
	require.NoError(t, r.RecordVisit(ctx, "https://a.example/axb", "axb"))
	require.NoError(t, r.RecordVisit(ctx, `https://a.example/c\d`, `c\d`))

	tests := []struct {
		query string
		want  string
	}{
		{"100%", "https://a.example/100%25"},
		{"a_b", "https://a.example/a_b"},
		{`c\d`, `https://a.example/c\d`},
	}

	for _, tt := range tests {
		got, err := r.SearchHistory(ctx, tt.query, 10)
		require.NoError(t, err)
		require.Len(t, got, 1, tt.query)
		assert.Equal(t, tt.want, got[0].URL)
	}
}

func TestDeleteHistoryEntry(t *testing.T) {
	r := testPopulatedHistory(t, 2)
	ctx := t.Context()
	require.NoError(t, r.DeleteHistoryEntry(ctx, "https://www.example0.com"))
	_, err := r.HistoryEntry(ctx, "https://www.example0.com")
	require.ErrorIs(t, err, ErrRecordNotFound)
	require.ErrorIs(t, r.DeleteHistoryEntry(ctx, "https://www.example0.com"), ErrRecordNotFound)
	assert.Equal(t, 1, r.Count(ctx, tableHistoryName))
}

func TestClearHistory(t *testing.T) {
	r := testPopulatedHistory(t, 10)
	ctx := t.Context()
	require.NoError(t, r.ClearHistory(ctx))
	entries, err := r.History(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// clearing an empty table is fine
	require.NoError(t, r.ClearHistory(ctx))
}
