package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/audioscribe/internal/discovery"
	"github.com/nguyentantai21042004/audioscribe/internal/logger"
)

type implWatcher struct {
	dir     string
	matcher discovery.Matcher
	handler EventHandler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	settle  time.Duration

	// pending maps a path to the time it becomes quiet enough to handle.
	pending map[string]time.Time
}

// Start handles matching files once no create or write event has been seen
// for them during the settle delay. A file written again later is handled
// again. A handler error is logged and watching continues.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for %s", w.dir, strings.Join(w.matcher.Extensions, ", "))

	var due <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return ErrClosed
			}
			// Files moved into the folder arrive as Create; copies in progress as Write.
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.track(ctx, event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ErrClosed
			}
			w.logger.Error(ctx, "Watcher error: %v", err)

		case <-due:
			for _, path := range w.ready(time.Now()) {
				w.handle(ctx, path)
			}
		}
		due = w.nextDue()
	}
}

func (w *implWatcher) track(ctx context.Context, path string) {
	if !w.matcher.Match(filepath.Base(path)) {
		w.logger.Debug(ctx, "Ignoring %s", path)
		return
	}
	w.pending[path] = time.Now().Add(w.settle)
}

// ready removes and returns the pending paths that have been quiet until now, oldest first.
func (w *implWatcher) ready(now time.Time) []string {
	var paths []string
	for path, at := range w.pending {
		if !at.After(now) {
			paths = append(paths, path)
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return w.pending[paths[i]].Before(w.pending[paths[j]])
	})
	for _, path := range paths {
		delete(w.pending, path)
	}
	return paths
}

func (w *implWatcher) nextDue() <-chan time.Time {
	if len(w.pending) == 0 {
		return nil
	}
	var earliest time.Time
	for _, at := range w.pending {
		if earliest.IsZero() || at.Before(earliest) {
			earliest = at
		}
	}
	return time.After(time.Until(earliest))
}

func (w *implWatcher) handle(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		w.logger.Debug(ctx, "Skipping %s: not a regular file", path)
		return
	}

	w.logger.Info(ctx, "New audio file ready: %s (%d bytes)", path, info.Size())
	if err := w.handler(ctx, path); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", path, err)
	}
}

// Stop closes the underlying fsnotify watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
