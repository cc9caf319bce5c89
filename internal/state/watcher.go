package state

import (
	"context"
	"path/filepath"
	"sync"

	"timekeeper/internal/logging"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports state written by other processes, such as a second
// tracker or `timekeeper log`. Only the latest state is kept when the
// consumer falls behind.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	changes chan State
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// NewWatcher watches the directory holding the store's file. The directory
// is watched rather than the file because writes replace the file.
func NewWatcher(store *Store) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		store:   store,
		watcher: fw,
		changes: make(chan State, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.store.Path())
	if err := ensureDir(dir); err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	logging.Get(logging.CategoryState).Debug("watching state directory", zap.String("dir", dir))
	go w.run(ctx)
	return nil
}

// Changes delivers the state each time the file changes.
func (w *Watcher) Changes() <-chan State {
	return w.changes
}

// Close stops the watcher. Safe to call multiple times, and before Start.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}

// Done is closed once the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	target := filepath.Clean(w.store.Path())

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			st, err := w.store.Load()
			if err != nil {
				logging.Get(logging.CategoryState).Warn("failed to reload state", zap.Error(err))
				continue
			}
			w.publish(st)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryState).Error("state watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) publish(st State) {
	select {
	case <-w.changes:
	default:
	}
	select {
	case w.changes <- st:
	default:
	}
}
