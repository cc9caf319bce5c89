package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"timekeeper/cmd/timekeeper/tracker"
	"timekeeper/cmd/timekeeper/ui"
	"timekeeper/internal/api"
	"timekeeper/internal/config"
	"timekeeper/internal/notify"
	"timekeeper/internal/state"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runTracker starts the interactive tracker.
func runTracker(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := state.NewStore(cfg.State.Path)
	client := api.NewClient(cfg.Client.BaseURL, cfg.GetClientTimeout())
	logger.Info("starting tracker",
		zap.String("server", client.BaseURL()),
		zap.String("state", store.Path()))

	var changes <-chan state.State
	if cfg.State.Watch {
		if w, err := startWatcher(ctx, store); err != nil {
			logger.Warn("state watcher unavailable", zap.Error(err))
		} else {
			defer w.Close()
			changes = w.Changes()
		}
	}

	model := tracker.New(ctx, tracker.Config{
		Logs:           client,
		State:          store,
		Reminder:       newReminder(cfg, store),
		StateChanges:   changes,
		Clock:          clock,
		Styles:         ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)),
		RequestTimeout: cfg.GetClientTimeout(),
		PulseDuration:  cfg.GetPulseDuration(),
		HistoryLimit:   cfg.UI.HistoryLimit,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func startWatcher(ctx context.Context, store *state.Store) (*state.Watcher, error) {
	w, err := state.NewWatcher(store)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// newReminder assembles the reminder side effects from config.
func newReminder(c *config.Config, perms notify.PermissionSource) *notify.Reminder {
	var sound notify.Sound
	switch c.Reminder.Sound {
	case config.SoundNone:
	case config.SoundCommand:
		sound = notify.CommandSound{Argv: c.Reminder.SoundCommand, Run: notify.ExecRunner}
	default:
		// stdout belongs to the renderer
		sound = notify.Bell{Out: os.Stderr}
	}

	var desktop notify.Desktop
	if c.Reminder.Desktop {
		desktop = notify.NewCommandDesktop()
	}
	return notify.NewReminder(sound, desktop, perms, c.Reminder.Title, c.Reminder.Body)
}
