// Package slot does the quarter-hour arithmetic behind the reminder cadence:
// the next boundary for the countdown, the nearest slot label for logging,
// and the canonical "H:MM" label format shared by submission and progress.
package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Interval is the spacing between slots.
const Interval = 15 * time.Minute

// WindowHour is the local hour during which reminders count towards progress.
const WindowHour = 20

// WindowSlots are the labels tracked by the progress indicator, in order.
var WindowSlots = []string{"20:00", "20:15", "20:30", "20:45", "21:00"}

// FormatLabel renders a slot label as "H:MM": minutes zero padded, hour not.
// Every label that is sent to the backend or compared against WindowSlots
// must come from here.
func FormatLabel(hour, minute int) string {
	return fmt.Sprintf("%d:%02d", hour, minute)
}

// ParseLabel splits an "H:MM" label into hour and minute.
func ParseLabel(label string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(label, ":")
	if !ok || len(m) != 2 || h == "" || len(h) > 2 {
		return 0, 0, fmt.Errorf("invalid slot label %q", label)
	}
	if hour, err = strconv.Atoi(h); err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid slot hour in %q", label)
	}
	if minute, err = strconv.Atoi(m); err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid slot minute in %q", label)
	}
	return hour, minute, nil
}

// NextBoundary returns the first quarter-hour mark strictly after now.
//
// A call made exactly on a boundary yields the following one. The mark is
// computed on absolute time, so the repeated hour of a DST fall-back still
// counts forward; zone offsets are whole quarter hours, so absolute marks
// land on local :00/:15/:30/:45.
func NextBoundary(now time.Time) time.Time {
	return now.Truncate(Interval).Add(Interval)
}

// NearestLabel rounds now to the closest quarter hour and returns its label.
// Seconds count towards the minute, and an exact half (7m30s past a slot)
// rounds up.
func NearestLabel(now time.Time) string {
	offset := time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second +
		time.Duration(now.Nanosecond())
	quarters := (offset + Interval/2) / Interval
	minute := int(quarters) * 15
	hour := now.Hour()
	if minute == 60 {
		minute = 0
		hour = (hour + 1) % 24
	}
	return FormatLabel(hour, minute)
}

// Countdown renders a remaining duration as "MM:SS", truncating sub-second
// remainders. Negative durations render as "00:00".
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// InWindow reports whether now falls inside the 8 PM reminder window.
func InWindow(now time.Time) bool {
	return now.Hour() == WindowHour
}

// DisplayTime renders a wall-clock time of day for humans.
func DisplayTime(t time.Time) string {
	return t.Format("15:04")
}
