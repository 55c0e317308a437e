// Package download models a tracked file transfer and the transitions its
// status may take.
package download

import (
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mateconpizza/neo/internal/timestamp"
)

// Status of a download.
type Status string

const (
	StatusDownloading Status = "downloading"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
	StatusCanceled    Status = "canceled"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDownloading || s.Terminal()
}

// Record is one row of the downloads table.
type Record struct {
	ID         int64  `db:"id"         json:"id"`
	URL        string `db:"url"        json:"url"`
	Filename   string `db:"filename"   json:"filename"`
	Filepath   string `db:"filepath"   json:"filepath"`
	Status     Status `db:"status"     json:"status"`
	Size       int64  `db:"size"       json:"size"`
	Downloaded int64  `db:"downloaded" json:"downloaded"`
	StartTime  string `db:"start_time" json:"start_time"`
	EndTime    string `db:"end_time"   json:"end_time,omitempty"` // empty while running
}

// New returns a record for a download that just began.
func New(u, name, path string, now time.Time) Record {
	if name == "" {
		name = filepath.Base(path)
	}

	return Record{
		URL:       u,
		Filename:  name,
		Filepath:  path,
		Status:    StatusDownloading,
		StartTime: timestamp.Format(now),
	}
}

// Percent returns the progress in the range [0, 100], or -1 when the size
// is unknown.
func (r *Record) Percent() int {
	if r.Status == StatusCompleted {
		return 100
	}
	if r.Size <= 0 {
		return -1
	}

	return int(r.Downloaded * 100 / r.Size)
}

// Started returns the start time.
func (r *Record) Started() time.Time {
	t, _ := timestamp.Parse(r.StartTime)
	return t
}

// Ended returns the end time and whether it is set.
func (r *Record) Ended() (time.Time, bool) {
	if r.EndTime == "" {
		return time.Time{}, false
	}
	t, err := timestamp.Parse(r.EndTime)

	return t, err == nil
}

// Dir returns the directory holding the file.
func (r *Record) Dir() string {
	return filepath.Dir(r.Filepath)
}

// FormatSize returns a human readable byte count.
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}

	return humanize.IBytes(uint64(n))
}
