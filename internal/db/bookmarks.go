package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mateconpizza/neo/internal/bookmark"
	"github.com/mateconpizza/neo/internal/timestamp"
)

// AddBookmark creates the bookmark for bURL, or replaces its title and
// creation time when it already exists.
func (r *SQLite) AddBookmark(ctx context.Context, bURL, title string) error {
	if strings.TrimSpace(bURL) == "" {
		return ErrURLEmpty
	}

	q := `
    INSERT INTO bookmarks (url, title, created_at)
    VALUES (?, ?, ?)
    ON CONFLICT(url) DO UPDATE SET
      title      = excluded.title,
      created_at = excluded.created_at`

	if _, err := r.DB.ExecContext(ctx, q, bURL, title, timestamp.Format(r.now())); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}

	slog.Debug("bookmark added", "url", bURL)

	return nil
}

// RemoveBookmark deletes the bookmark for bURL.
func (r *SQLite) RemoveBookmark(ctx context.Context, bURL string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM bookmarks WHERE url = ?", bURL)
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}

	return expectAffected(res, "bookmark url: "+bURL)
}

// IsBookmarked reports whether bURL is bookmarked.
func (r *SQLite) IsBookmarked(ctx context.Context, bURL string) (bool, error) {
	var n int
	if err := r.DB.GetContext(ctx, &n, "SELECT COUNT(*) FROM bookmarks WHERE url = ?", bURL); err != nil {
		return false, fmt.Errorf("is bookmarked: %w", err)
	}

	return n > 0, nil
}

// Bookmark returns the bookmark for bURL.
func (r *SQLite) Bookmark(ctx context.Context, bURL string) (*bookmark.Bookmark, error) {
	var b bookmark.Bookmark
	err := r.DB.GetContext(ctx, &b, "SELECT id, url, title, created_at FROM bookmarks WHERE url = ?", bURL)
	if err != nil {
		return nil, notFound(err, "bookmark url: "+bURL)
	}

	return &b, nil
}

// Bookmarks returns every bookmark, newest first.
func (r *SQLite) Bookmarks(ctx context.Context) ([]*bookmark.Bookmark, error) {
	q := `
    SELECT id, url, title, created_at
    FROM bookmarks
    ORDER BY created_at DESC, id DESC`

	bs := []*bookmark.Bookmark{}
	if err := r.DB.SelectContext(ctx, &bs, q); err != nil {
		return nil, fmt.Errorf("bookmarks: %w: %w", ErrRecordScan, err)
	}

	slog.Debug("getting all bookmarks", "got", len(bs))

	return bs, nil
}
