// Package watch re-runs a conversion when its GEDCOM input changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/FocuswithJustin/gedvault/core/errors"
	"github.com/FocuswithJustin/gedvault/internal/logging"
)

// DefaultDebounce is the quiet period after the last change before the
// handler runs.
const DefaultDebounce = 250 * time.Millisecond

// Handler is called once per debounced batch of changes.
type Handler func(ctx context.Context) error

// Watcher watches a single file. The parent directory is watched so that
// editors which save by renaming a temporary file are still seen.
type Watcher struct {
	path     string
	dir      string
	debounce time.Duration
	handler  Handler
	watcher  *fsnotify.Watcher
}

// New creates a watcher for path. A non-positive debounce selects
// DefaultDebounce.
func New(path string, debounce time.Duration, handler Handler) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewIO("watch", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewIO("watch", path, err)
	}
	dir := filepath.Dir(abs)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, errors.NewIO("watch", dir, err)
	}

	return &Watcher{
		path:     abs,
		dir:      dir,
		debounce: debounce,
		handler:  handler,
		watcher:  fw,
	}, nil
}

// Run delivers debounced changes to the handler until ctx is cancelled.
// Handler errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stopTimer()

	logging.InfoContext(ctx, "watching", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logging.DebugContext(ctx, "input_changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.WarnContext(ctx, "watch_error", "error", err)

		case <-timerC:
			timerC = nil
			if err := w.handler(ctx); err != nil {
				logging.ErrorContext(ctx, "rebuild_failed", "error", err)
			}
		}
	}
}

// Close releases the watcher without running it.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
