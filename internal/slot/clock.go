package slot

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock uses the system clock in the local zone.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed time.
func (c FixedClock) Now() time.Time { return c.At }
