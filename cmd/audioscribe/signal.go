package main

import (
	"context"
	"os/signal"
	"syscall"
)

// notifyContext is cancelled by the first SIGINT or SIGTERM. After that the
// default handlers are restored, so a second Ctrl+C kills the process even
// while an upload is still running.
func notifyContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go releaseOnDone(ctx, stop)
	return ctx, stop
}

func releaseOnDone(ctx context.Context, stop func()) {
	<-ctx.Done()
	stop()
}
