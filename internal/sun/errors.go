package sun

import (
	"errors"
	"fmt"
	"time"
)

// ErrNeverOccurs is matched by errors.Is for any NoEventError. Callers use it
// to distinguish "no such instant today" from computation misuse.
var ErrNeverOccurs = errors.New("sun event does not occur")

// NoEventError reports that an event has no instant on a calendar date, which
// happens under polar day or polar night conditions.
type NoEventError struct {
	Event Event
	Year  int
	Month time.Month
	Day   int
}

func newNoEventError(ev Event, year int, month time.Month, day int) *NoEventError {
	return &NoEventError{Event: ev, Year: year, Month: month, Day: day}
}

func (e *NoEventError) Error() string {
	return fmt.Sprintf("%s does not occur on %04d-%02d-%02d at this location", e.Event, e.Year, int(e.Month), e.Day)
}

func (e *NoEventError) Unwrap() error {
	return ErrNeverOccurs
}
