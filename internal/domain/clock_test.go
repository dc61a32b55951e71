package domain

import "time"

// fixedClock pins Now to a reference instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// testClock is frozen mid-2025 so year-relative validation is stable.
var testClock = fixedClock{now: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}
