// Package tracker implements the interactive TimeKeeper client.
// It is a single bubbletea Model: the one-second clock tick, log submission,
// history, the streak and the reminder are all driven through Update.
package tracker

import (
	"context"
	"time"

	"timekeeper/cmd/timekeeper/ui"
	"timekeeper/internal/journal"
	"timekeeper/internal/logging"
	"timekeeper/internal/slot"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the tracker state. It is passed by value through Update.
type Model struct {
	cfg Config
	ctx context.Context

	input textinput.Model
	bar   progress.Model
	help  help.Model
	keys  keyMap

	ticker *slot.Ticker
	tick   slot.Tick

	logs     []journal.LogEntry
	progress journal.Progress
	streak   int

	pulsing          bool
	pulseGen         int
	loggedFeedback   bool
	feedbackGen      int
	streakBonus      bool
	askingPermission bool

	width  int
	height int
}

// New builds a Model. ctx bounds every background command the model issues.
func New(ctx context.Context, cfg Config) Model {
	if cfg.Clock == nil {
		cfg.Clock = slot.RealClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.PulseDuration <= 0 {
		cfg.PulseDuration = defaultPulseDuration
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.Prompt = "› "
	ti.PromptStyle = cfg.Styles.Prompt
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	bar := progress.New(
		progress.WithSolidFill(string(ui.Success)),
		progress.WithoutPercentage(),
		progress.WithWidth(30),
	)

	// Reminders come from the tick loop only; the first frame uses a scratch ticker.
	now := cfg.Clock.Now().In(cfg.Location)
	first := (&slot.Ticker{}).Advance(now)

	m := Model{
		cfg:    cfg,
		ctx:    ctx,
		input:  ti,
		bar:    bar,
		help:   help.New(),
		keys:   defaultKeyMap(),
		ticker: &slot.Ticker{},
		tick:   first,
	}
	if cfg.State != nil {
		m.streak = cfg.State.Streak()
	}
	m.progress = journal.UpdateProgress(nil, now)
	return m
}

// Init starts the clock, the first fetch and the state watch.
func (m Model) Init() tea.Cmd {
	logging.Get(logging.CategoryUI).Debug("tracker starting")
	return tea.Batch(
		textinput.Blink,
		m.fetchLogs(),
		scheduleTick(),
		m.waitForState(),
	)
}

// Streak returns the displayed streak.
func (m Model) Streak() int { return m.streak }

// Logs returns the cached history.
func (m Model) Logs() []journal.LogEntry { return m.logs }
