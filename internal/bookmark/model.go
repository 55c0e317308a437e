// Package bookmark holds the user-pinned URL record.
package bookmark

import (
	"time"

	"github.com/mateconpizza/neo/internal/timestamp"
)

// Bookmark represents a bookmark. URL is unique.
type Bookmark struct {
	ID        int    `db:"id"         json:"id"`
	URL       string `db:"url"        json:"url"`
	Title     string `db:"title"      json:"title"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// Created returns the creation time; zero if the stored value is invalid.
func (b *Bookmark) Created() time.Time {
	t, _ := timestamp.Parse(b.CreatedAt)
	return t
}

// DisplayTitle returns the title, or the URL when the title is empty.
func (b *Bookmark) DisplayTitle() string {
	if b.Title == "" {
		return b.URL
	}

	return b.Title
}

// New creates a new bookmark.
func New(bURL, title string) *Bookmark {
	return &Bookmark{
		URL:   bURL,
		Title: title,
	}
}
