package processor

import (
	"context"
	"errors"
)

// ErrBatchInProgress is returned when Run is called while another batch is
// still running on the same Processor.
var ErrBatchInProgress = errors.New("a batch is already in progress")

// Processor transcribes a list of audio files into the output directory.
type Processor interface {
	// Run handles paths strictly in order. The first failure aborts the
	// batch; outputs already written are left in place.
	Run(ctx context.Context, paths []string) error
}

// Reporter receives human readable progress messages. Calls are synchronous.
type Reporter interface {
	Report(msg string)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(msg string)

func (f ReporterFunc) Report(msg string) { f(msg) }

type nopReporter struct{}

func (nopReporter) Report(string) {}
