package download

import (
	"fmt"
	"time"

	"github.com/mateconpizza/neo/internal/timestamp"
)

// Event is something the engine reported about a running download.
type Event interface {
	event()
}

// Progress reports bytes received so far. Total is the expected size, or
// a value <= 0 when the engine does not know it yet.
type Progress struct {
	Received int64
	Total    int64
}

// Finished reports the end of the transfer.
type Finished struct {
	Success bool
}

// Canceled reports that the user aborted the transfer.
type Canceled struct{}

func (Progress) event() {}
func (Finished) event() {}
func (Canceled) event() {}

// Apply returns the record that results from ev. r is never modified; on
// error the returned record equals r.
func Apply(r Record, ev Event, now time.Time) (Record, error) {
	if r.Status.Terminal() {
		return r, fmt.Errorf("%w: id %d is %s", ErrTerminal, r.ID, r.Status)
	}

	next := r
	switch e := ev.(type) {
	case Progress:
		if e.Received < 0 {
			return r, fmt.Errorf("%w: received %d", ErrInvalidProgress, e.Received)
		}
		if e.Total > 0 {
			next.Size = e.Total
		}
		next.Downloaded = e.Received
		if next.Size > 0 && next.Downloaded > next.Size {
			next.Downloaded = next.Size
		}

	case Finished:
		next.Status = StatusFailed
		if e.Success {
			next.Status = StatusCompleted
			if next.Size > 0 {
				next.Downloaded = next.Size
			}
		}
		next.EndTime = timestamp.Format(now)

	case Canceled:
		next.Status = StatusCanceled
		next.EndTime = timestamp.Format(now)

	default:
		return r, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}

	return next, nil
}
