package tracker

import (
	"context"
	"time"

	"timekeeper/cmd/timekeeper/ui"
	"timekeeper/internal/journal"
	"timekeeper/internal/notify"
	"timekeeper/internal/slot"
	"timekeeper/internal/state"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// LogService is the backend the tracker reads from and writes to.
type LogService interface {
	ListLogs(ctx context.Context) ([]journal.LogEntry, error)
	CreateLog(ctx context.Context, activity, slotTime string) error
}

// StateStore persists the streak and the notification permission.
type StateStore interface {
	Streak() int
	Increment() (int, error)
	SetPermission(p state.Permission) error
}

// Reminder performs the sound/notification side effects.
type Reminder interface {
	Fire(ctx context.Context) notify.Outcome
}

// Config holds everything the tracker needs.
type Config struct {
	Logs     LogService
	State    StateStore
	Reminder Reminder

	// StateChanges, if set, delivers state written by other processes.
	StateChanges <-chan state.State

	Clock    slot.Clock
	Location *time.Location
	Styles   ui.Styles

	RequestTimeout time.Duration
	PulseDuration  time.Duration
	HistoryLimit   int
}

const (
	loggedFeedbackDuration = 2 * time.Second
	streakBonusDuration    = 300 * time.Millisecond
	defaultPulseDuration   = 30 * time.Second
	defaultRequestTimeout  = 10 * time.Second
)

// =============================================================================
// MESSAGES
// =============================================================================

// tickMsg samples the wall clock once per second.
type tickMsg time.Time

// submitRequestedMsg carries the raw input at the moment the user submitted.
type submitRequestedMsg struct {
	Activity string
	At       time.Time
}

// submitCompletedMsg reports the outcome of a POST.
type submitCompletedMsg struct {
	Activity string
	Slot     string
	Err      error
}

// logsFetchedMsg reports the outcome of a GET.
type logsFetchedMsg struct {
	Logs []journal.LogEntry
	Err  error
}

// reminderFiredMsg reports what the reminder side effects did.
type reminderFiredMsg struct {
	Boundary time.Time
	Outcome  notify.Outcome
}

// streakChangedMsg carries state written by another process.
type streakChangedMsg state.State

// permissionAnsweredMsg carries the user's reply to the notification prompt.
type permissionAnsweredMsg struct {
	Permission state.Permission
}

// Timed flags carry the generation that armed them so a later arm wins.
type (
	pulseEndedMsg          struct{ gen int }
	loggedFeedbackEndedMsg struct{ gen int }
	streakBonusEndedMsg    struct{}
)
