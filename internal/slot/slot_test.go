package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2025, time.March, 14, hour, minute, second, 0, time.Local)
}

func TestNextBoundary_Examples(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"mid quarter", at(20, 7, 0), at(20, 15, 0)},
		{"late in hour", at(20, 52, 30), at(21, 0, 0)},
		{"hour rollover", at(19, 59, 50), at(20, 0, 0)},
		{"exactly on boundary", at(20, 15, 0), at(20, 30, 0)},
		{"just before boundary", at(20, 14, 59), at(20, 15, 0)},
		{"day rollover", at(23, 50, 0), time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(NextBoundary(tt.now)), "got %s", NextBoundary(tt.now))
		})
	}
}

func TestNextBoundary_DSTTransitions(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")
	utc := func(month time.Month, day, hour, minute int) time.Time {
		return time.Date(2025, month, day, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		now       time.Time
		want      time.Time
		wantLabel string
	}{
		// 2025-11-02: 01:00-02:00 local happens twice.
		{"fall back first 01:20 EDT", utc(time.November, 2, 5, 20).In(ny), utc(time.November, 2, 5, 30), "1:30"},
		{"fall back second 01:20 EST", utc(time.November, 2, 6, 20).In(ny), utc(time.November, 2, 6, 30), "1:30"},
		{"fall back last EDT quarter", utc(time.November, 2, 5, 50).In(ny), utc(time.November, 2, 6, 0), "1:00"},
		// 2025-03-09: 02:00-03:00 local is skipped.
		{"spring forward", utc(time.March, 9, 6, 50).In(ny), utc(time.March, 9, 7, 0), "3:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextBoundary(tt.now)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.True(t, got.After(tt.now), "not strictly after %s", tt.now)
			assert.Equal(t, tt.wantLabel, FormatLabel(got.Hour(), got.Minute()))
		})
	}
}

func TestNextBoundary_SubSecondOnBoundary(t *testing.T) {
	now := at(20, 30, 0).Add(400 * time.Millisecond)
	assert.True(t, at(20, 45, 0).Equal(NextBoundary(now)))
}

func TestNearestLabel_Examples(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{at(20, 52, 30), "21:00"},
		{at(20, 7, 30), "20:15"},
		{at(20, 7, 29), "20:00"},
		{at(20, 8, 0), "20:15"},
		{at(20, 22, 0), "20:15"},
		{at(20, 23, 0), "20:30"},
		{at(20, 0, 0), "20:00"},
		{at(9, 58, 0), "10:00"},
		{at(23, 55, 0), "0:00"},
		{at(7, 1, 0), "7:00"},
	}
	for _, tt := range tests {
		t.Run(tt.now.Format("15:04:05"), func(t *testing.T) {
			assert.Equal(t, tt.want, NearestLabel(tt.now))
		})
	}
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "20:00", FormatLabel(20, 0))
	assert.Equal(t, "9:05", FormatLabel(9, 5))
	assert.Equal(t, "0:45", FormatLabel(0, 45))
}

func TestWindowSlotsUseCanonicalFormat(t *testing.T) {
	for _, label := range WindowSlots {
		h, m, err := ParseLabel(label)
		require.NoError(t, err)
		assert.Equal(t, label, FormatLabel(h, m))
	}
}

func TestParseLabel(t *testing.T) {
	h, m, err := ParseLabel("8:15")
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 15, m)

	for _, bad := range []string{"", "20", "20:5", "24:00", "20:60", "ab:cd", "120:00", ":15"} {
		_, _, err := ParseLabel(bad)
		assert.Error(t, err, "label %q", bad)
	}
}

func TestCountdown(t *testing.T) {
	assert.Equal(t, "00:00", Countdown(0))
	assert.Equal(t, "00:00", Countdown(999*time.Millisecond))
	assert.Equal(t, "00:01", Countdown(time.Second))
	assert.Equal(t, "14:59", Countdown(15*time.Minute-time.Millisecond))
	assert.Equal(t, "15:00", Countdown(15*time.Minute))
	assert.Equal(t, "00:00", Countdown(-time.Second))
}

func TestInWindow(t *testing.T) {
	assert.False(t, InWindow(at(19, 59, 59)))
	assert.True(t, InWindow(at(20, 0, 0)))
	assert.True(t, InWindow(at(20, 59, 59)))
	assert.False(t, InWindow(at(21, 0, 0)))
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}
