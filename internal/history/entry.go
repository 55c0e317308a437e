// Package history holds the visited-URL record.
package history

import (
	"time"

	"github.com/mateconpizza/neo/internal/timestamp"
)

// Entry aggregates every visit to one URL.
type Entry struct {
	ID         int    `db:"id"          json:"id"`
	URL        string `db:"url"         json:"url"`
	Title      string `db:"title"       json:"title"`
	LastVisit  string `db:"last_visit"  json:"last_visit"`
	VisitCount int    `db:"visit_count" json:"visit_count"`
}

// LastVisitTime returns the time of the most recent visit.
func (e *Entry) LastVisitTime() time.Time {
	t, _ := timestamp.Parse(e.LastVisit)
	return t
}

// DisplayTitle returns the title, or the URL when the title is empty.
func (e *Entry) DisplayTitle() string {
	if e.Title == "" {
		return e.URL
	}

	return e.Title
}
