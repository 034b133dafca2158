package watcher

import (
	"context"
	"errors"
)

// ErrClosed is returned by Start when the watcher was stopped underneath it.
var ErrClosed = errors.New("watcher closed")

// Watcher monitors a folder and hands new audio files to an EventHandler.
type Watcher interface {
	// Start blocks until ctx is done or the watcher is stopped. Files are
	// handled one at a time on the calling goroutine.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly created file.
type EventHandler func(ctx context.Context, filePath string) error
