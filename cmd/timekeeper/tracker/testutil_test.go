// Package tracker provides test utilities for the tracker Model.
package tracker

import (
	"context"
	"sync"
	"time"

	"timekeeper/cmd/timekeeper/ui"
	"timekeeper/internal/journal"
	"timekeeper/internal/notify"
	"timekeeper/internal/slot"
	"timekeeper/internal/state"
)

// =============================================================================
// FAKES
// =============================================================================

type createCall struct {
	Activity string
	SlotTime string
}

// fakeLogs records calls and returns canned responses.
type fakeLogs struct {
	mu        sync.Mutex
	logs      []journal.LogEntry
	listErr   error
	createErr error
	lists     int
	creates   []createCall
}

func (f *fakeLogs) ListLogs(context.Context) ([]journal.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return f.logs, f.listErr
}

func (f *fakeLogs) CreateLog(_ context.Context, activity, slotTime string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, createCall{Activity: activity, SlotTime: slotTime})
	return f.createErr
}

func (f *fakeLogs) createCalls() []createCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]createCall(nil), f.creates...)
}

// fakeState is an in-memory StateStore.
type fakeState struct {
	mu         sync.Mutex
	streak     int
	permission state.Permission
	incErr     error
}

func (f *fakeState) Streak() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.streak
}

func (f *fakeState) Increment() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incErr != nil {
		return 0, f.incErr
	}
	f.streak++
	return f.streak, nil
}

func (f *fakeState) SetPermission(p state.Permission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permission = p
	return nil
}

// fakeReminder counts Fire calls.
type fakeReminder struct {
	mu      sync.Mutex
	fires   int
	outcome notify.Outcome
}

func (f *fakeReminder) Fire(context.Context) notify.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fires++
	return f.outcome
}

// =============================================================================
// FIXTURES
// =============================================================================

// testNow is mid-slot inside the evening window.
var testNow = time.Date(2024, 1, 15, 20, 7, 40, 0, time.UTC)

type testDeps struct {
	logs     *fakeLogs
	state    *fakeState
	reminder *fakeReminder
}

// NewTestModel builds a Model wired to fakes with a fixed UTC clock.
func NewTestModel() (Model, *testDeps) {
	deps := &testDeps{
		logs:     &fakeLogs{},
		state:    &fakeState{permission: state.PermissionDefault},
		reminder: &fakeReminder{},
	}
	m := New(context.Background(), Config{
		Logs:          deps.logs,
		State:         deps.state,
		Reminder:      deps.reminder,
		Clock:         slot.FixedClock{At: testNow},
		Location:      time.UTC,
		Styles:        ui.NewStyles(ui.LightTheme()),
		PulseDuration: 30 * time.Second,
	})
	return m, deps
}

func at(h, m, s, ns int) time.Time {
	return time.Date(2024, 1, 15, h, m, s, ns, time.UTC)
}
