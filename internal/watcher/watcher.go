// Package watcher observes the active project's folder and reports
// filesystem activity so the UI can refresh attachment availability.
// File contents are never read.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 200 * time.Millisecond

// Runner watches at most one project folder at a time. SetDir swaps the
// watched folder when the active project changes; an empty path watches
// nothing (projects without a backing folder).
type Runner struct {
	logger *slog.Logger
	cb     func()
	setCh  chan string
}

// New creates a Runner that invokes cb (debounced) after filesystem
// activity in the watched folder.
func New(logger *slog.Logger, cb func()) *Runner {
	return &Runner{
		logger: logger,
		cb:     cb,
		setCh:  make(chan string, 1),
	}
}

// SetDir asks the runner to watch dir instead of the current folder.
// Safe to call before Run; the latest value wins.
func (r *Runner) SetDir(dir string) {
	for {
		select {
		case r.setCh <- dir:
			return
		default:
			// Drop the stale pending value.
			select {
			case <-r.setCh:
			default:
			}
		}
	}
}

// Run processes watch events until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	var watched []string
	var debounce *time.Timer
	var debounceCh <-chan time.Time

	schedule := func() {
		if debounce == nil {
			debounce = time.NewTimer(debounceInterval)
			debounceCh = debounce.C
		} else {
			debounce.Reset(debounceInterval)
		}
	}

	rewatch := func(dir string) {
		for _, p := range watched {
			_ = w.Remove(p)
		}
		watched = nil
		if dir == "" {
			r.logger.Debug("watcher: idle, no project folder")
			return
		}
		added, err := addDirsRecursive(w, dir)
		if err != nil {
			r.logger.Warn("watcher: watch project folder failed",
				slog.String("dir", dir),
				slog.String("error", err.Error()))
			return
		}
		watched = added
		r.logger.Info("watcher: watching project folder", slog.String("dir", dir))
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			r.logger.Info("watcher: stopped")
			return nil

		case dir := <-r.setCh:
			rewatch(dir)

		case <-debounceCh:
			if r.cb != nil {
				r.cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// New directories join the watch list.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if added, addErr := addDirsRecursive(w, ev.Name); addErr == nil {
						watched = append(watched, added...)
					}
				}
			}
			schedule()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string) ([]string, error) {
	var added []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(p); err != nil {
			return err
		}
		added = append(added, p)
		return nil
	})
	if err != nil {
		return added, err
	}
	return added, nil
}
