package tracker

import (
	"time"

	"timekeeper/internal/journal"
	"timekeeper/internal/logging"
	"timekeeper/internal/slot"
	"timekeeper/internal/state"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update handles every event the tracker receives.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 24; w > 10 {
			m.input.Width = min(w, 60)
		}
		if w := msg.Width - 20; w > 10 {
			m.bar.Width = min(w, 40)
		}
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case submitRequestedMsg:
		activity, err := journal.NormalizeActivity(msg.Activity)
		if err != nil {
			return m, nil
		}
		label := slot.NearestLabel(msg.At.In(m.cfg.Location))
		logging.Get(logging.CategoryAPI).Debug("submitting activity",
			zap.String("slot_time", label))
		return m, m.postLog(activity, label)

	case submitCompletedMsg:
		return m.handleSubmitCompleted(msg)

	case logsFetchedMsg:
		if msg.Err != nil {
			logging.Get(logging.CategoryAPI).Warn("failed to fetch logs", zap.Error(msg.Err))
			return m, nil
		}
		m.logs = msg.Logs
		m.progress = journal.UpdateProgress(m.logs, m.tick.Now)
		return m, nil

	case reminderFiredMsg:
		logging.Get(logging.CategoryNotify).Info("reminder fired",
			zap.Time("boundary", msg.Boundary),
			zap.Bool("sounded", msg.Outcome.Sounded),
			zap.Bool("notified", msg.Outcome.Notified))
		if msg.Outcome.NeedsPermission {
			m.askingPermission = true
		}
		return m, nil

	case permissionAnsweredMsg:
		m.askingPermission = false
		if m.cfg.State != nil {
			if err := m.cfg.State.SetPermission(msg.Permission); err != nil {
				logging.Get(logging.CategoryState).Warn("failed to save notification permission", zap.Error(err))
			}
		}
		return m, nil

	case streakChangedMsg:
		m.streak = msg.Streak
		return m, m.waitForState()

	case pulseEndedMsg:
		if msg.gen == m.pulseGen {
			m.pulsing = false
		}
		return m, nil

	case loggedFeedbackEndedMsg:
		if msg.gen == m.feedbackGen {
			m.loggedFeedback = false
		}
		return m, nil

	case streakBonusEndedMsg:
		m.streakBonus = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.askingPermission {
		switch {
		case key.Matches(msg, m.keys.Allow):
			return m, answerPermission(state.PermissionGranted)
		case key.Matches(msg, m.keys.Deny):
			return m, answerPermission(state.PermissionDenied)
		case msg.Type == tea.KeyEsc:
			// Dismissed: the prompt returns on the next reminder.
			m.askingPermission = false
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m, m.requestSubmit()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchLogs()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	prevDay := m.tick.Now
	m.tick = m.ticker.Advance(now.In(m.cfg.Location))

	cmds := []tea.Cmd{scheduleTick()}

	// Progress is scoped to the local day.
	if !sameDay(prevDay, m.tick.Now) {
		m.progress = journal.UpdateProgress(m.logs, m.tick.Now)
	}

	if m.tick.Fire {
		logging.Get(logging.CategoryClock).Info("slot boundary reached",
			zap.String("slot", slot.DisplayTime(m.tick.Boundary)))
		m.pulsing = true
		m.pulseGen++
		cmds = append(cmds,
			m.fireReminder(m.tick.Boundary),
			endPulseAfter(m.cfg.PulseDuration, m.pulseGen),
		)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSubmitCompleted(msg submitCompletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logging.Get(logging.CategoryAPI).Error("failed to log activity",
			zap.String("slot_time", msg.Slot), zap.Error(msg.Err))
		return m, nil
	}

	m.input.Reset()
	m.loggedFeedback = true
	m.feedbackGen++
	cmds := []tea.Cmd{
		m.fetchLogs(),
		endLoggedFeedbackAfter(loggedFeedbackDuration, m.feedbackGen),
	}

	if m.cfg.State != nil {
		n, err := m.cfg.State.Increment()
		if err != nil {
			logging.Get(logging.CategoryState).Error("failed to save streak", zap.Error(err))
		} else {
			m.streak = n
			m.streakBonus = true
			cmds = append(cmds, endStreakBonusAfter(streakBonusDuration))
		}
	}
	return m, tea.Batch(cmds...)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
