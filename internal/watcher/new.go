package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/audioscribe/internal/discovery"
	"github.com/nguyentantai21042004/audioscribe/internal/logger"
)

// DefaultSettleDelay is how long a file must go without create or write
// events before it is handled.
const DefaultSettleDelay = 500 * time.Millisecond

// Option customises a Watcher.
type Option func(*implWatcher)

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(w *implWatcher) { w.settle = d }
}

// New watches dir (non-recursively) for files accepted by matcher.
func New(dir string, matcher discovery.Matcher, handler EventHandler, log logger.Logger, opts ...Option) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path %s: %w", dir, err)
	}

	w := &implWatcher{
		dir:     dir,
		matcher: matcher,
		handler: handler,
		logger:  log,
		watcher: fw,
		settle:  DefaultSettleDelay,
		pending: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}
