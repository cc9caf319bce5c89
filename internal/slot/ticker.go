package slot

import "time"

// Tick is one evaluation of the countdown.
type Tick struct {
	Now       time.Time
	Next      time.Time
	Remaining time.Duration
	Countdown string
	NextLabel string
	InWindow  bool

	// Fire is set when a boundary has just been reached and no reminder has
	// been fired for it yet. Boundary names that boundary.
	Fire     bool
	Boundary time.Time
}

// Ticker turns a stream of wall-clock samples into countdown ticks and
// decides when a reminder is due.
//
// A reminder fires once per boundary. It fires either while the countdown
// shows 00:00, or on the first sample after the boundary was crossed if the
// 00:00 second was skipped. The zero value is ready to use.
type Ticker struct {
	target    time.Time
	lastFired time.Time
}

// Advance evaluates the countdown at now.
func (t *Ticker) Advance(now time.Time) Tick {
	next := NextBoundary(now)
	remaining := next.Sub(now)

	tick := Tick{
		Now:       now,
		Next:      next,
		Remaining: remaining,
		Countdown: Countdown(remaining),
		NextLabel: DisplayTime(next),
		InWindow:  InWindow(now),
	}

	var due time.Time
	switch {
	case remaining < time.Second:
		due = next
	case !t.target.IsZero() && !now.Before(t.target):
		due = t.target
	}
	if !due.IsZero() && !due.Equal(t.lastFired) {
		tick.Fire = true
		tick.Boundary = due
		t.lastFired = due
	}

	t.target = next
	return tick
}

// LastFired returns the boundary the most recent reminder was fired for.
func (t *Ticker) LastFired() time.Time {
	return t.lastFired
}
