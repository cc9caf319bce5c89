// Package logging provides categorised zap loggers for TimeKeeper.
// The interactive tracker owns the terminal, so diagnostics go to a log file
// (one JSON line per entry, tagged with its category) instead of stderr.
// Until Initialize is called every category logs to a no-op logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config loading
	CategoryClock  Category = "clock"  // Slot countdown and reminder firing
	CategoryAPI    Category = "api"    // Backend HTTP calls
	CategoryState  Category = "state"  // Streak/permission state file
	CategoryNotify Category = "notify" // Sound and desktop notifications
	CategoryUI     Category = "ui"     // Tracker event loop
	CategoryServer Category = "server" // Backend request handling
	CategoryStore  Category = "store"  // Backend SQLite storage
)

// Options controls how Initialize builds the base logger.
type Options struct {
	// File is the log destination. Empty means stderr.
	File string
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Categories disables individual categories when mapped to false.
	Categories map[string]bool
}

var (
	base      = zap.NewNop()
	disabled  map[string]bool
	loggers   = make(map[Category]*zap.Logger)
	loggersMu sync.RWMutex
)

// Initialize builds the base logger. Calling it again replaces the logger
// and drops cached category loggers.
func Initialize(opts Options) error {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	Use(logger, opts.Categories)
	return nil
}

// Use installs an already built logger, e.g. zaptest or the CLI logger.
func Use(logger *zap.Logger, categories map[string]bool) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	base = logger
	disabled = make(map[string]bool, len(categories))
	for cat, enabled := range categories {
		if !enabled {
			disabled[cat] = true
		}
	}
	loggers = make(map[Category]*zap.Logger)
}

// Get returns (or creates) the logger for a category.
func Get(category Category) *zap.Logger {
	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}
	var l *zap.Logger
	if disabled[string(category)] {
		l = zap.NewNop()
	} else {
		l = base.With(zap.String("category", string(category)))
	}
	loggers[category] = l
	return l
}

// Sync flushes the base logger.
func Sync() {
	loggersMu.RLock()
	defer loggersMu.RUnlock()
	_ = base.Sync()
}

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer measures how long an operation took.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs a warning if the operation exceeded threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("operation slow",
			zap.String("op", t.op), zap.Duration("elapsed", elapsed), zap.Duration("threshold", threshold))
	} else {
		Get(t.category).Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
