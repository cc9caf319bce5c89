// Package state persists the client-local values that survive restarts:
// the streak counter and the desktop notification permission.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"timekeeper/internal/logging"

	"go.uber.org/zap"
)

// Permission mirrors the browser notification permission model.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// State is the on-disk document.
type State struct {
	Streak                 int        `json:"streak"`
	NotificationPermission Permission `json:"notification_permission,omitempty"`
}

// ErrInvalidPermission is returned for values other than granted/denied/default.
var ErrInvalidPermission = errors.New("invalid notification permission")

// Store reads and writes the state file. Writes replace the file atomically.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by path. The file is created on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the current state. A missing file is the zero state.
func (s *Store) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Streak returns the persisted streak, or 0 if the file cannot be read.
func (s *Store) Streak() int {
	st, err := s.Load()
	if err != nil {
		logging.Get(logging.CategoryState).Warn("failed to read streak", zap.String("path", s.path), zap.Error(err))
		return 0
	}
	return st.Streak
}

// Increment adds one to the streak and returns the new value.
func (s *Store) Increment() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.read()
	if err != nil {
		return 0, err
	}
	st.Streak++
	if err := s.write(st); err != nil {
		return 0, err
	}
	logging.Get(logging.CategoryState).Debug("streak incremented", zap.Int("streak", st.Streak))
	return st.Streak, nil
}

// Permission returns the stored notification permission.
func (s *Store) Permission() Permission {
	st, err := s.Load()
	if err != nil {
		logging.Get(logging.CategoryState).Warn("failed to read permission", zap.Error(err))
		return PermissionDefault
	}
	return st.NotificationPermission
}

// SetPermission records the user's answer to the notification prompt.
func (s *Store) SetPermission(p Permission) error {
	switch p {
	case PermissionDefault, PermissionGranted, PermissionDenied:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPermission, p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.read()
	if err != nil {
		return err
	}
	st.NotificationPermission = p
	return s.write(st)
}

func (s *Store) read() (State, error) {
	st := State{NotificationPermission: PermissionDefault}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("failed to read state: %w", err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{NotificationPermission: PermissionDefault}, fmt.Errorf("failed to parse state: %w", err)
	}
	if st.Streak < 0 {
		st.Streak = 0
	}
	if st.NotificationPermission == "" {
		st.NotificationPermission = PermissionDefault
	}
	return st, nil
}

func (s *Store) write(st State) error {
	dir := filepath.Dir(s.path)
	if err := ensureDir(dir); err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace state: %w", err)
	}
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}
