package domain

import "time"

// Clock supplies the current time to validation and business rules.
// Injected everywhere instead of reading the wall clock directly so tests
// can pin a fixed reference time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
