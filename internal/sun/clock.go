package sun

import "time"

// Clock supplies "now" to the commands that compare the current time against
// an event instant. Production code uses SystemClock; tests substitute
// FixedClock for deterministic values.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
