// Package ui provides the visual styling for the TimeKeeper tracker.
// Light and dark palettes share the same semantic colours.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colour palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f7f5f2")
	LightForeground = lipgloss.Color("#1f2430")
	LightPrimary    = lipgloss.Color("#3b4a6b") // Slate
	LightAccent     = lipgloss.Color("#e0913a") // Amber
	LightMuted      = lipgloss.Color("#8a8f99")
	LightBorder     = lipgloss.Color("#d9d6d0")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#151922")
	DarkForeground = lipgloss.Color("#eceff4")
	DarkPrimary    = lipgloss.Color("#f0a64b") // Amber (flipped)
	DarkAccent     = lipgloss.Color("#7aa2f7") // Blue
	DarkMuted      = lipgloss.Color("#5c6370")
	DarkBorder     = lipgloss.Color("#2e3440")
	DarkCard       = lipgloss.Color("#1c212b")

	// Semantic Colors (same in both modes)
	Success = lipgloss.Color("#8BC34A")
	Warning = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName resolves "light", "dark" or anything else (auto-detect).
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background from COLORFGBG, then
// TIMEKEEPER_DARK_MODE, and defaults to light.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	if os.Getenv("TIMEKEEPER_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style

	// Text
	Title lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Countdown panel
	Timer         lipgloss.Style
	NextSlot      lipgloss.Style
	WindowPanel   lipgloss.Style // inside the 8 PM window
	ReminderPulse lipgloss.Style // while a reminder is active

	// Submit control
	Button        lipgloss.Style
	ButtonSuccess lipgloss.Style

	// Progress
	Indicator       lipgloss.Style
	IndicatorActive lipgloss.Style

	// Streak
	Streak      lipgloss.Style
	StreakBonus lipgloss.Style

	// History
	HistoryActivity lipgloss.Style
	HistoryTime     lipgloss.Style
	HistorySlot     lipgloss.Style

	// Prompt
	Prompt lipgloss.Style

	// Status
	Success lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Card: card,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Timer: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		NextSlot: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		WindowPanel: card.
			BorderForeground(theme.Accent),

		ReminderPulse: card.
			Border(lipgloss.ThickBorder()).
			BorderForeground(Warning),

		Button: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2),

		ButtonSuccess: lipgloss.NewStyle().
			Background(Success).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Indicator: lipgloss.NewStyle().
			Foreground(theme.Muted),

		IndicatorActive: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Streak: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		StreakBonus: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),

		HistoryActivity: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		HistoryTime: lipgloss.NewStyle().
			Foreground(theme.Muted),

		HistorySlot: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),
	}
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Muted.Render(strings.Repeat("─", width))
}
