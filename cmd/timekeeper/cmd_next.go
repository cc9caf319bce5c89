package main

import (
	"fmt"

	"timekeeper/internal/slot"

	"github.com/spf13/cobra"
)

// nextCmd prints the countdown once
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next slot and the time left until it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := clock.Now()
		next := slot.NextBoundary(now)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Next slot: %s (in %s)\n", slot.DisplayTime(next), slot.Countdown(next.Sub(now)))
		fmt.Fprintf(out, "Logging now files under: %s\n", slot.NearestLabel(now))
		if slot.InWindow(now) {
			fmt.Fprintln(out, "The 8 PM logging window is open.")
		}
		return nil
	},
}
