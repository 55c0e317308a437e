// Package timestamp defines the text form used for every stored time.
package timestamp

import "time"

// Layout is fixed-width and UTC, so stored values sort lexicographically
// in the same order as the instants they represent.
const Layout = "2006-01-02 15:04:05.000000"

// Format returns t in the stored layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse parses a stored value. Empty input yields the zero time.
func Parse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	return time.ParseInLocation(Layout, s, time.UTC)
}

// Now returns the current time in the stored layout.
func Now() string {
	return Format(time.Now())
}
