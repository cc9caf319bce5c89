package main

import (
	"fmt"

	"timekeeper/internal/state"

	"github.com/spf13/cobra"
)

// streakCmd prints the persisted streak
var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current streak",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := state.NewStore(cfg.State.Path).Load()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d\n", st.Streak)
		return nil
	},
}

// notificationsCmd reads or changes the desktop notification permission
var notificationsCmd = &cobra.Command{
	Use:   "notifications [allow|deny|reset]",
	Short: "Show or change desktop notification permission",
	Long: `Without an argument, prints the stored permission. "allow" and "deny"
set it; "reset" returns to asking on the next reminder.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"allow", "deny", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store := state.NewStore(cfg.State.Path)
		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Notifications: %s\n", store.Permission())
			return nil
		}

		var p state.Permission
		switch args[0] {
		case "allow":
			p = state.PermissionGranted
		case "deny":
			p = state.PermissionDenied
		case "reset":
			p = state.PermissionDefault
		default:
			return fmt.Errorf("unknown argument %q (want allow, deny or reset)", args[0])
		}
		if err := store.SetPermission(p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Notifications: %s\n", p)
		return nil
	},
}
