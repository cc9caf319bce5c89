package tracker

import (
	"fmt"
	"strings"

	"timekeeper/cmd/timekeeper/ui"
	"timekeeper/internal/journal"
	"timekeeper/internal/slot"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// View renders the whole screen from the current Model.
func (m Model) View() string {
	s := m.cfg.Styles
	sections := []string{
		renderHeader(s, m.streak, m.streakBonus),
		renderCountdown(s, m.tick, m.pulsing),
		m.renderInput(),
	}
	if m.askingPermission {
		sections = append(sections, s.Warning.Render("Enable desktop notifications for reminders? [y/n]"))
	}
	sections = append(sections,
		renderProgress(s, m.bar, m.progress),
		s.RenderDivider(max(m.width-4, 20)),
		renderHistory(s, journal.RenderHistory(m.logs, m.cfg.Location), m.cfg.HistoryLimit),
		s.Footer.Render(m.help.View(m.keys)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderHeader(s ui.Styles, streak int, bonus bool) string {
	streakStyle := s.Streak
	if bonus {
		streakStyle = s.StreakBonus
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.Header.Render("TimeKeeper"),
		"  ",
		streakStyle.Render(fmt.Sprintf("streak %d", streak)),
	)
}

func renderCountdown(s ui.Styles, t slot.Tick, pulsing bool) string {
	panel := s.Card
	switch {
	case pulsing:
		panel = s.ReminderPulse
	case t.InWindow:
		panel = s.WindowPanel
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.Muted.Render("Next slot "),
			s.NextSlot.Render(t.NextLabel),
			"  ",
			s.Timer.Render(t.Countdown),
		),
	}
	if t.InWindow {
		lines = append(lines, s.Title.Render("● 8 PM logging window is open"))
	}
	if pulsing {
		lines = append(lines, s.Warning.Render("It's time to log your progress!"))
	}
	return panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderInput() string {
	s := m.cfg.Styles
	button := s.Button.Render("Log Activity")
	if m.loggedFeedback {
		button = s.ButtonSuccess.Render("Logged!")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", button)
}

func renderProgress(s ui.Styles, bar progress.Model, p journal.Progress) string {
	indicators := make([]string, 0, len(p.Slots))
	for _, st := range p.Slots {
		if st.Active {
			indicators = append(indicators, s.IndicatorActive.Render("● "+st.Label))
		} else {
			indicators = append(indicators, s.Indicator.Render("○ "+st.Label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Tonight"),
		strings.Join(indicators, "  "),
		lipgloss.JoinHorizontal(lipgloss.Center,
			bar.ViewAs(p.Percent/100),
			s.Muted.Render(fmt.Sprintf(" %.0f%%", p.Percent)),
		),
	)
}

func renderHistory(s ui.Styles, rows []journal.HistoryRow, limit int) string {
	if len(rows) == 0 {
		return s.Muted.Render("No activity logged yet.")
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Activity))
	}
	width = min(width, 48)

	lines := []string{s.Title.Render("History")}
	for _, r := range rows {
		activity := truncate(r.Activity, width)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.HistoryActivity.Width(width+2).Render(activity),
			s.HistoryTime.Width(7).Render(r.Time),
			s.HistorySlot.Render(r.Slot),
		))
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to at most width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String() + "…"
}
