package main

import (
	"context"

	"github.com/nguyentantai21042004/audioscribe/internal/logger"
)

// logReporter shows batch progress through the logger, which adds the timestamp.
type logReporter struct {
	ctx context.Context
	log logger.Logger
}

func (r logReporter) Report(msg string) {
	r.log.Info(r.ctx, "%s", msg)
}
