package tracker

import (
	"context"
	"time"

	"timekeeper/internal/logging"
	"timekeeper/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

// scheduleTick wakes the model on the next whole second.
func scheduleTick() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// requestSubmit snapshots the input and the clock into a submitRequestedMsg.
func (m Model) requestSubmit() tea.Cmd {
	activity := m.input.Value()
	at := m.cfg.Clock.Now()
	return func() tea.Msg {
		return submitRequestedMsg{Activity: activity, At: at}
	}
}

// fetchLogs loads the history from the backend.
func (m Model) fetchLogs() tea.Cmd {
	if m.cfg.Logs == nil {
		return nil
	}
	ctx, svc, timeout := m.ctx, m.cfg.Logs, m.cfg.RequestTimeout
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		logs, err := svc.ListLogs(reqCtx)
		return logsFetchedMsg{Logs: logs, Err: err}
	}
}

// postLog sends one activity to the backend.
func (m Model) postLog(activity, label string) tea.Cmd {
	if m.cfg.Logs == nil {
		return nil
	}
	ctx, svc, timeout := m.ctx, m.cfg.Logs, m.cfg.RequestTimeout
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		err := svc.CreateLog(reqCtx, activity, label)
		return submitCompletedMsg{Activity: activity, Slot: label, Err: err}
	}
}

// fireReminder runs the sound and notification side effects off the UI loop.
func (m Model) fireReminder(boundary time.Time) tea.Cmd {
	if m.cfg.Reminder == nil {
		return nil
	}
	ctx, r := m.ctx, m.cfg.Reminder
	return func() tea.Msg {
		timer := logging.StartTimer(logging.CategoryNotify, "reminder")
		outcome := r.Fire(ctx)
		timer.Stop()
		return reminderFiredMsg{Boundary: boundary, Outcome: outcome}
	}
}

// waitForState blocks until the watcher reports an external state change.
func (m Model) waitForState() tea.Cmd {
	if m.cfg.StateChanges == nil {
		return nil
	}
	ctx, ch := m.ctx, m.cfg.StateChanges
	return func() tea.Msg {
		select {
		case st, ok := <-ch:
			if !ok {
				return nil
			}
			return streakChangedMsg(st)
		case <-ctx.Done():
			return nil
		}
	}
}

func endPulseAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return pulseEndedMsg{gen: gen} })
}

func endLoggedFeedbackAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return loggedFeedbackEndedMsg{gen: gen} })
}

func endStreakBonusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return streakBonusEndedMsg{} })
}

func answerPermission(p state.Permission) tea.Cmd {
	return func() tea.Msg { return permissionAnsweredMsg{Permission: p} }
}
