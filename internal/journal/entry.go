// Package journal holds the activity log entries returned by the backend
// and the pure functions that turn them into history rows and progress.
package journal

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyActivity is returned for input that is blank after trimming.
var ErrEmptyActivity = errors.New("activity is empty")

// LogEntry is one recorded activity. Entries are created by the backend and
// never modified by the client.
type LogEntry struct {
	ID        int64  `json:"id,omitempty"`
	Activity  string `json:"activity"`
	SlotTime  string `json:"slot_time"`
	Timestamp string `json:"timestamp"`
}

// NewLogRequest is the body of a log submission.
type NewLogRequest struct {
	Activity string `json:"activity" validate:"required,max=200"`
	SlotTime string `json:"slot_time" validate:"required,max=10,slotlabel"`
}

// NormalizeActivity trims surrounding whitespace from user input.
func NormalizeActivity(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyActivity
	}
	return s, nil
}

// naiveLayout matches ISO-8601 timestamps written without a zone offset.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Time parses the entry's timestamp. Timestamps without a zone offset are
// taken as UTC, which is how the backend records them.
func (e LogEntry) Time() (time.Time, bool) {
	if ts, err := time.Parse(time.RFC3339Nano, e.Timestamp); err == nil {
		return ts, true
	}
	if ts, err := time.ParseInLocation(naiveLayout, e.Timestamp, time.UTC); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

// FormatTimestamp renders t the way the backend writes entry timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
