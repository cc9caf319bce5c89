package main

import (
	"fmt"
	"strings"

	"timekeeper/internal/api"
	"timekeeper/internal/journal"
	"timekeeper/internal/slot"
	"timekeeper/internal/state"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// logCmd submits one activity without starting the tracker
var logCmd = &cobra.Command{
	Use:   "log [activity]",
	Short: "Log an activity for the nearest slot",
	Long: `Records what you are doing right now. The entry is filed under the
quarter hour closest to the current time, and the streak goes up by one.

Example:
  timekeeper log reading chapter 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	activity, err := journal.NormalizeActivity(strings.Join(args, " "))
	if err != nil {
		return err
	}

	now := clock.Now()
	label := slot.NearestLabel(now)

	client := api.NewClient(cfg.Client.BaseURL, cfg.GetClientTimeout())
	if err := client.CreateLog(cmd.Context(), activity, label); err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	streak, err := state.NewStore(cfg.State.Path).Increment()
	if err != nil {
		logger.Warn("failed to save streak", zap.Error(err))
		fmt.Fprintf(cmd.OutOrStdout(), "Logged %q for %s\n", activity, label)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged %q for %s (streak %d)\n", activity, label, streak)
	return nil
}
