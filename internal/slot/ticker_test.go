package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker_CountdownFields(t *testing.T) {
	var ticker Ticker
	tick := ticker.Advance(at(20, 7, 0))

	assert.Equal(t, "08:00", tick.Countdown)
	assert.Equal(t, "20:15", tick.NextLabel)
	assert.True(t, tick.InWindow)
	assert.False(t, tick.Fire)
	assert.True(t, at(20, 15, 0).Equal(tick.Next))
}

func TestTicker_FiresOnceWhileShowingZero(t *testing.T) {
	var ticker Ticker
	base := at(20, 14, 59)

	fired := 0
	// Several samples inside the 00:00 second, then the boundary itself.
	for _, offset := range []time.Duration{100, 300, 600, 900, 1000} {
		tick := ticker.Advance(base.Add(offset * time.Millisecond))
		if tick.Fire {
			fired++
			assert.True(t, at(20, 15, 0).Equal(tick.Boundary))
		}
	}
	assert.Equal(t, 1, fired)
	assert.True(t, at(20, 15, 0).Equal(ticker.LastFired()))
}

func TestTicker_FiresWhenZeroSecondSkipped(t *testing.T) {
	var ticker Ticker

	tick := ticker.Advance(at(20, 14, 58).Add(999 * time.Millisecond))
	assert.Equal(t, "00:01", tick.Countdown)
	assert.False(t, tick.Fire)

	tick = ticker.Advance(at(20, 15, 0).Add(time.Millisecond))
	assert.True(t, tick.Fire)
	assert.True(t, at(20, 15, 0).Equal(tick.Boundary))

	tick = ticker.Advance(at(20, 15, 1))
	assert.False(t, tick.Fire)
}

func TestTicker_FiresForEachBoundary(t *testing.T) {
	var ticker Ticker
	fired := 0
	start := at(19, 59, 0)
	for s := 0; s < 3600; s++ {
		if ticker.Advance(start.Add(time.Duration(s) * time.Second)).Fire {
			fired++
		}
	}
	// 20:00, 20:15, 20:30, 20:45.
	assert.Equal(t, 4, fired)
}

func TestTicker_FirstSampleDoesNotFireMidSlot(t *testing.T) {
	var ticker Ticker
	assert.False(t, ticker.Advance(at(20, 30, 10)).Fire)
}

func TestTicker_DSTFallBackRepeatedHour(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")
	// 00:50 EDT to 01:10 EST on 2025-11-02, sampled every 30 seconds.
	start := time.Date(2025, time.November, 2, 4, 50, 0, 0, time.UTC)
	end := time.Date(2025, time.November, 2, 6, 10, 0, 0, time.UTC)

	var ticker Ticker
	var boundaries []time.Time
	for now := start; !now.After(end); now = now.Add(30 * time.Second) {
		tick := ticker.Advance(now.In(ny))
		require.Greater(t, tick.Remaining, time.Duration(0), "countdown stalled at %s", now.In(ny))
		if tick.Fire {
			boundaries = append(boundaries, tick.Boundary.UTC())
		}
	}

	// 01:00, 01:15, 01:30, 01:45 EDT then 01:00 EST.
	want := []time.Time{
		time.Date(2025, time.November, 2, 5, 0, 0, 0, time.UTC),
		time.Date(2025, time.November, 2, 5, 15, 0, 0, time.UTC),
		time.Date(2025, time.November, 2, 5, 30, 0, 0, time.UTC),
		time.Date(2025, time.November, 2, 5, 45, 0, 0, time.UTC),
		time.Date(2025, time.November, 2, 6, 0, 0, 0, time.UTC),
	}
	require.Len(t, boundaries, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(boundaries[i]), "boundary %d: got %s", i, boundaries[i])
	}
}
