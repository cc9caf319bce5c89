package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"timekeeper/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSound struct {
	err   error
	plays int
}

func (f *fakeSound) Play(context.Context) error {
	f.plays++
	return f.err
}

type fakeDesktop struct {
	err   error
	calls []string
}

func (f *fakeDesktop) Notify(_ context.Context, title, body string) error {
	f.calls = append(f.calls, title+"|"+body)
	return f.err
}

type fixedPermission state.Permission

func (p fixedPermission) Permission() state.Permission { return state.Permission(p) }

func TestReminder_Granted(t *testing.T) {
	sound, desktop := &fakeSound{}, &fakeDesktop{}
	r := NewReminder(sound, desktop, fixedPermission(state.PermissionGranted), "Title", "Body")

	out := r.Fire(context.Background())

	assert.Equal(t, Outcome{Sounded: true, Notified: true}, out)
	assert.Equal(t, []string{"Title|Body"}, desktop.calls)
}

func TestReminder_DefaultAsksForPermission(t *testing.T) {
	desktop := &fakeDesktop{}
	r := NewReminder(&fakeSound{}, desktop, fixedPermission(state.PermissionDefault), "T", "B")

	out := r.Fire(context.Background())

	assert.True(t, out.NeedsPermission)
	assert.False(t, out.Notified)
	assert.Empty(t, desktop.calls)
}

func TestReminder_DeniedDoesNothing(t *testing.T) {
	desktop := &fakeDesktop{}
	r := NewReminder(nil, desktop, fixedPermission(state.PermissionDenied), "T", "B")

	assert.Equal(t, Outcome{}, r.Fire(context.Background()))
	assert.Empty(t, desktop.calls)
}

func TestReminder_FailuresAreSwallowed(t *testing.T) {
	sound := &fakeSound{err: errors.New("autoplay blocked")}
	desktop := &fakeDesktop{err: errors.New("dbus down")}
	r := NewReminder(sound, desktop, fixedPermission(state.PermissionGranted), "T", "B")

	out := r.Fire(context.Background())

	assert.Equal(t, 1, sound.plays)
	assert.False(t, out.Sounded)
	assert.False(t, out.Notified)
	assert.False(t, out.NeedsPermission)
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Bell{Out: &buf}.Play(context.Background()))
	assert.Equal(t, "\a", buf.String())
	assert.Error(t, Bell{}.Play(context.Background()))
}

func TestCommandSound(t *testing.T) {
	var got []string
	s := CommandSound{
		Argv: []string{"paplay", "/usr/share/sounds/bell.oga"},
		Run: func(_ context.Context, name string, args ...string) error {
			got = append([]string{name}, args...)
			return nil
		},
	}
	require.NoError(t, s.Play(context.Background()))
	assert.Equal(t, []string{"paplay", "/usr/share/sounds/bell.oga"}, got)

	assert.Error(t, CommandSound{}.Play(context.Background()))
}

func TestCommandDesktop(t *testing.T) {
	var name string
	var args []string
	run := func(_ context.Context, n string, a ...string) error {
		name, args = n, a
		return nil
	}
	found := func(string) (string, error) { return "/usr/bin/x", nil }

	linux := CommandDesktop{GOOS: "linux", LookPath: found, Run: run}
	require.NoError(t, linux.Notify(context.Background(), "TimeKeeper Reminder", "log it"))
	assert.Equal(t, "notify-send", name)
	assert.Equal(t, []string{"--app-name=timekeeper", "TimeKeeper Reminder", "log it"}, args)

	mac := CommandDesktop{GOOS: "darwin", LookPath: found, Run: run}
	require.NoError(t, mac.Notify(context.Background(), "T", "B"))
	assert.Equal(t, "osascript", name)
	assert.Equal(t, []string{"-e", `display notification "B" with title "T"`}, args)

	windows := CommandDesktop{GOOS: "windows", LookPath: found, Run: run}
	assert.ErrorIs(t, windows.Notify(context.Background(), "T", "B"), ErrNoNotifier)

	missing := CommandDesktop{
		GOOS:     "linux",
		LookPath: func(string) (string, error) { return "", errors.New("not found") },
		Run:      run,
	}
	assert.ErrorIs(t, missing.Notify(context.Background(), "T", "B"), ErrNoNotifier)
}
