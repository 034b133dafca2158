package processor

import (
	"sync/atomic"

	"github.com/nguyentantai21042004/audioscribe/internal/config"
	"github.com/nguyentantai21042004/audioscribe/internal/logger"
	"github.com/nguyentantai21042004/audioscribe/internal/media"
	"github.com/nguyentantai21042004/audioscribe/internal/stt"
)

type implProcessor struct {
	outputDir   string
	writeDocx   bool
	transcriber stt.Transcriber
	prober      media.Prober
	reporter    Reporter
	logger      logger.Logger

	running atomic.Bool
}

// New creates a Processor writing into cfg.Paths.Output. prober may be nil,
// in which case inputs are not inspected before upload. A nil reporter
// discards progress messages.
func New(cfg *config.Config, transcriber stt.Transcriber, prober media.Prober, log logger.Logger, reporter Reporter) Processor {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &implProcessor{
		outputDir:   cfg.Paths.Output,
		writeDocx:   cfg.Output.Docx,
		transcriber: transcriber,
		prober:      prober,
		reporter:    reporter,
		logger:      log,
	}
}
