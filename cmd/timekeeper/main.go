package main

import (
	"fmt"
	"os"

	"timekeeper/internal/config"
	"timekeeper/internal/logging"
	"timekeeper/internal/slot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger

	clock slot.Clock = slot.RealClock{}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "timekeeper",
	Short: "TimeKeeper - log what you are doing every quarter hour",
	Long: `TimeKeeper asks you every 15 minutes during the 8 PM hour what you are
working on, keeps a countdown to the next slot and shows tonight's progress.

Run without arguments to start the interactive tracker. Run "timekeeper serve"
to start the backend it talks to.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}
		cfg = loaded

		// The tracker owns the terminal, so it logs to a file instead.
		if cmd == cmd.Root() {
			level := cfg.Logging.Level
			if verbose {
				level = "debug"
			}
			if err := logging.Initialize(logging.Options{
				File:       cfg.Logging.File,
				Level:      level,
				Categories: cfg.Logging.Categories,
			}); err != nil {
				return err
			}
			logger = logging.Get(logging.CategoryBoot)
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.Use(logger, cfg.Logging.Categories)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runTracker,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "Config file")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most n entries (0 = config default)")
	historyCmd.Flags().BoolVar(&historyRaw, "raw", false, "Print markdown without rendering")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(notificationsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
