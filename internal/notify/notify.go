// Package notify performs the reminder side effects fired at a slot
// boundary: a sound, and a desktop notification when the user allowed it.
// Failures are logged and swallowed.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"timekeeper/internal/logging"
	"timekeeper/internal/state"

	"go.uber.org/zap"
)

// ErrNoNotifier is returned when the platform has no notification command.
var ErrNoNotifier = errors.New("no desktop notifier available")

// Sound plays the reminder sound.
type Sound interface {
	Play(ctx context.Context) error
}

// Desktop shows a native notification.
type Desktop interface {
	Notify(ctx context.Context, title, body string) error
}

// PermissionSource reports the stored notification permission.
type PermissionSource interface {
	Permission() state.Permission
}

// Outcome describes what a reminder did.
type Outcome struct {
	Sounded  bool
	Notified bool
	// NeedsPermission asks the caller to prompt the user, since permission
	// was never granted nor denied.
	NeedsPermission bool
}

// Reminder fires the configured side effects.
type Reminder struct {
	sound       Sound
	desktop     Desktop
	permissions PermissionSource
	title       string
	body        string
}

// NewReminder creates a Reminder. sound and desktop may be nil.
func NewReminder(sound Sound, desktop Desktop, permissions PermissionSource, title, body string) *Reminder {
	return &Reminder{sound: sound, desktop: desktop, permissions: permissions, title: title, body: body}
}

// Fire plays the sound and, depending on permission, notifies or asks for
// permission. It never returns an error.
func (r *Reminder) Fire(ctx context.Context) Outcome {
	log := logging.Get(logging.CategoryNotify)
	var out Outcome

	if r.sound != nil {
		if err := r.sound.Play(ctx); err != nil {
			log.Info("reminder sound blocked", zap.Error(err))
		} else {
			out.Sounded = true
		}
	}

	if r.desktop == nil || r.permissions == nil {
		return out
	}
	switch r.permissions.Permission() {
	case state.PermissionGranted:
		if err := r.desktop.Notify(ctx, r.title, r.body); err != nil {
			log.Warn("desktop notification failed", zap.Error(err))
		} else {
			out.Notified = true
		}
	case state.PermissionDenied:
	default:
		out.NeedsPermission = true
	}
	return out
}

// Bell rings the terminal bell.
type Bell struct {
	Out io.Writer
}

// Play writes BEL to the terminal.
func (b Bell) Play(context.Context) error {
	if b.Out == nil {
		return errors.New("bell has no output")
	}
	_, err := io.WriteString(b.Out, "\a")
	return err
}

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs commands with os/exec and waits for them.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", name, err, out)
	}
	return nil
}

// CommandSound plays the sound by running an audio player command.
type CommandSound struct {
	Argv []string
	Run  Runner
}

// Play runs the configured command.
func (c CommandSound) Play(ctx context.Context) error {
	if len(c.Argv) == 0 {
		return errors.New("sound command is empty")
	}
	run := c.Run
	if run == nil {
		run = ExecRunner
	}
	return run(ctx, c.Argv[0], c.Argv[1:]...)
}

// CommandDesktop shows notifications via notify-send (Linux/BSD) or
// osascript (macOS).
type CommandDesktop struct {
	GOOS     string
	LookPath func(string) (string, error)
	Run      Runner
}

// NewCommandDesktop returns a notifier for the running platform.
func NewCommandDesktop() CommandDesktop {
	return CommandDesktop{GOOS: runtime.GOOS, LookPath: exec.LookPath, Run: ExecRunner}
}

// Notify shows a notification with title and body.
func (d CommandDesktop) Notify(ctx context.Context, title, body string) error {
	name, args := d.command(title, body)
	if name == "" {
		return ErrNoNotifier
	}
	if d.LookPath != nil {
		if _, err := d.LookPath(name); err != nil {
			return fmt.Errorf("%w: %v", ErrNoNotifier, err)
		}
	}
	run := d.Run
	if run == nil {
		run = ExecRunner
	}
	return run(ctx, name, args...)
}

func (d CommandDesktop) command(title, body string) (string, []string) {
	switch d.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return "osascript", []string{"-e", script}
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", []string{"--app-name=timekeeper", title, body}
	default:
		return "", nil
	}
}
