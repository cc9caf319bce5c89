package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all TimeKeeper configuration.
type Config struct {
	// Backend the tracker talks to
	Client ClientConfig `yaml:"client"`

	// Backend served by `timekeeper serve`
	Server ServerConfig `yaml:"server"`

	// Client-local state (streak, notification permission)
	State StateConfig `yaml:"state"`

	// Reminder side effects
	Reminder ReminderConfig `yaml:"reminder"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ClientConfig configures the backend client.
type ClientConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// ServerConfig configures the bundled backend.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	DatabasePath    string `yaml:"database_path"`
	Driver          string `yaml:"driver"` // sqlite3 (cgo) or sqlite (pure Go)
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// StateConfig configures the local state file.
type StateConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"` // follow changes made by other running clients
}

// ReminderConfig configures what happens at a slot boundary.
type ReminderConfig struct {
	// Sound is "bell", "command" or "none".
	Sound        string   `yaml:"sound"`
	SoundCommand []string `yaml:"sound_command"`
	Desktop      bool     `yaml:"desktop"`
	Title        string   `yaml:"title"`
	Body         string   `yaml:"body"`
	Pulse        string   `yaml:"pulse"`
}

// UIConfig configures the tracker view.
type UIConfig struct {
	Theme        string `yaml:"theme"` // light, dark or auto
	HistoryLimit int    `yaml:"history_limit"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"` // debug, info, warn, error
	File       string          `yaml:"file"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// Valid sound modes.
const (
	SoundBell    = "bell"
	SoundCommand = "command"
	SoundNone    = "none"
)

// DefaultDir returns ~/.timekeeper, falling back to ./.timekeeper when the
// home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".timekeeper"
	}
	return filepath.Join(home, ".timekeeper")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	dir := DefaultDir()
	return &Config{
		Client: ClientConfig{
			BaseURL: "http://localhost:5001",
			Timeout: "10s",
		},
		Server: ServerConfig{
			Addr:            ":5001",
			DatabasePath:    filepath.Join(dir, "journal.db"),
			Driver:          "sqlite3",
			ShutdownTimeout: "5s",
		},
		State: StateConfig{
			Path:  filepath.Join(dir, "state.json"),
			Watch: true,
		},
		Reminder: ReminderConfig{
			Sound:   SoundBell,
			Desktop: true,
			Title:   "TimeKeeper Reminder",
			Body:    "It's time to log your progress!",
			Pulse:   "30s",
		},
		UI: UIConfig{
			Theme:        "auto",
			HistoryLimit: 50,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dir, "logs", "timekeeper.log"),
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TIMEKEEPER_SERVER_URL"); v != "" {
		c.Client.BaseURL = v
	}
	if v := os.Getenv("TIMEKEEPER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TIMEKEEPER_DB"); v != "" {
		c.Server.DatabasePath = v
	}
	if v := os.Getenv("TIMEKEEPER_STATE"); v != "" {
		c.State.Path = v
	}
	if v := os.Getenv("TIMEKEEPER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// GetClientTimeout returns the backend request timeout.
func (c *Config) GetClientTimeout() time.Duration {
	return parseDuration(c.Client.Timeout, 10*time.Second)
}

// GetShutdownTimeout returns how long `serve` waits for in-flight requests.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 5*time.Second)
}

// GetPulseDuration returns how long the reminder pulse stays visible.
func (c *Config) GetPulseDuration() time.Duration {
	return parseDuration(c.Reminder.Pulse, 30*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ValidDrivers lists the SQLite drivers the backend can open.
var ValidDrivers = []string{"sqlite3", "sqlite"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid client base_url: %q", c.Client.BaseURL)
	}

	validDriver := false
	for _, d := range ValidDrivers {
		if c.Server.Driver == d {
			validDriver = true
			break
		}
	}
	if !validDriver {
		return fmt.Errorf("invalid server driver: %s (valid: %v)", c.Server.Driver, ValidDrivers)
	}

	switch c.Reminder.Sound {
	case SoundBell, SoundNone:
	case SoundCommand:
		if len(c.Reminder.SoundCommand) == 0 {
			return fmt.Errorf("reminder sound is %q but sound_command is empty", SoundCommand)
		}
	default:
		return fmt.Errorf("invalid reminder sound: %q", c.Reminder.Sound)
	}

	if c.State.Path == "" {
		return fmt.Errorf("state path not configured")
	}
	return nil
}
