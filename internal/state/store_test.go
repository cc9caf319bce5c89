package state

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MissingFileIsZero(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "state.json"))

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, st.Streak)
	assert.Equal(t, PermissionDefault, st.NotificationPermission)
	assert.Equal(t, 0, s.Streak())
}

func TestStore_IncrementPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	first := NewStore(path)
	n, err := first.Increment()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = first.Increment()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// A fresh store on the same file plays the part of a page reload.
	reloaded := NewStore(path)
	assert.Equal(t, 2, reloaded.Streak())
}

func TestStore_ConcurrentIncrements(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "state.json"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Increment()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Streak())
}

func TestStore_PermissionRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "state.json"))
	_, err := s.Increment()
	require.NoError(t, err)

	require.NoError(t, s.SetPermission(PermissionDenied))
	assert.Equal(t, PermissionDenied, s.Permission())
	assert.Equal(t, 1, s.Streak(), "permission write must keep the streak")

	assert.ErrorIs(t, s.SetPermission("maybe"), ErrInvalidPermission)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path)
	_, err := s.Load()
	assert.Error(t, err)
	assert.Equal(t, 0, s.Streak())
	assert.Equal(t, PermissionDefault, s.Permission())

	_, err = s.Increment()
	assert.Error(t, err, "a corrupt file must not be silently reset")
}

func TestStore_NegativeStreakClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"streak": -4}`), 0o644))
	assert.Equal(t, 0, NewStore(path).Streak())
}
