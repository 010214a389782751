// Package fswatch reports rewrites of a PDF on disk using
// github.com/fsnotify/fsnotify.
//
// The parent directory is watched rather than the file itself: many tools
// save by writing a temporary file and renaming it over the original,
// which would silently end a watch on the old inode.
package fswatch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/logger"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.DocumentWatcher = (*Watcher)(nil)

// Watcher implements driven.DocumentWatcher.
type Watcher struct {
	debounce time.Duration
}

// NewWatcher creates a watcher. A non-positive debounce uses DefaultDebounce.
func NewWatcher(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch emits on the returned channel after path is written, created or
// renamed into place. The channel is closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("fsnotify: watching %s", abs)

	out := make(chan struct{}, 1)
	go w.run(ctx, fsw, abs, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, path string, out chan<- struct{}) {
	defer close(out)
	defer fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !isDocumentChange(event, path) {
				continue
			}
			logger.Debug("fsnotify: %s %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("fsnotify: %v", err)

		case <-timer.C:
			// Drop the signal if the previous one has not been consumed yet.
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

// isDocumentChange reports whether event means path now holds new content.
// Removals and renames away are ignored; a save that replaces the file
// shows up as a create of path.
func isDocumentChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
