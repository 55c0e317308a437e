package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mateconpizza/neo/internal/history"
	"github.com/mateconpizza/neo/internal/timestamp"
)

// RecordVisit counts a visit to bURL. The first visit inserts a row with
// visit_count 1; later visits increment the count and refresh title and
// last_visit, all in one statement.
func (r *SQLite) RecordVisit(ctx context.Context, bURL, title string) error {
	if strings.TrimSpace(bURL) == "" {
		return ErrURLEmpty
	}

	q := `
    INSERT INTO history (url, title, last_visit, visit_count)
    VALUES (?, ?, ?, 1)
    ON CONFLICT(url) DO UPDATE SET
      visit_count = visit_count + 1,
      title       = excluded.title,
      last_visit  = excluded.last_visit`

	if _, err := r.DB.ExecContext(ctx, q, bURL, title, timestamp.Format(r.now())); err != nil {
		return fmt.Errorf("record visit: %w", err)
	}

	slog.Debug("visit recorded", "url", bURL)

	return nil
}

// History returns at most limit entries, most recently visited first.
func (r *SQLite) History(ctx context.Context, limit int) ([]*history.Entry, error) {
	if limit <= 0 {
		return []*history.Entry{}, nil
	}

	q := `
    SELECT id, url, title, last_visit, visit_count
    FROM history
    ORDER BY last_visit DESC, id DESC
    LIMIT ?`

	entries := []*history.Entry{}
	if err := r.DB.SelectContext(ctx, &entries, q, limit); err != nil {
		return nil, fmt.Errorf("history: %w: %w", ErrRecordScan, err)
	}

	return entries, nil
}

// likeEscaper escapes the LIKE wildcards with '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchHistory returns entries whose URL or title contains query, most
// visited first.
func (r *SQLite) SearchHistory(ctx context.Context, query string, limit int) ([]*history.Entry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	slog.Debug("searching history", "query", query)

	q := `
    SELECT id, url, title, last_visit, visit_count
    FROM history
    WHERE LOWER(url) LIKE LOWER(?) ESCAPE '\' OR LOWER(title) LIKE LOWER(?) ESCAPE '\'
    ORDER BY visit_count DESC, last_visit DESC
    LIMIT ?`

	like := "%" + likeEscaper.Replace(query) + "%"
	entries := []*history.Entry{}
	if err := r.DB.SelectContext(ctx, &entries, q, like, like, limit); err != nil {
		return nil, fmt.Errorf("search history: %w: %w", ErrRecordScan, err)
	}

	return entries, nil
}

// HistoryEntry returns the entry for bURL.
func (r *SQLite) HistoryEntry(ctx context.Context, bURL string) (*history.Entry, error) {
	var e history.Entry
	err := r.DB.GetContext(ctx, &e, `
    SELECT id, url, title, last_visit, visit_count
    FROM history
    WHERE url = ?`, bURL)
	if err != nil {
		return nil, notFound(err, "history url: "+bURL)
	}

	return &e, nil
}

// DeleteHistoryEntry removes the entry for bURL.
func (r *SQLite) DeleteHistoryEntry(ctx context.Context, bURL string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM history WHERE url = ?", bURL)
	if err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}

	return expectAffected(res, "history url: "+bURL)
}

// ClearHistory deletes every history entry.
func (r *SQLite) ClearHistory(ctx context.Context) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM history")
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	n, _ := res.RowsAffected()
	slog.Info("history cleared", "deleted", n)

	return nil
}
