package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/audioscribe/internal/docx"
	"github.com/nguyentantai21042004/audioscribe/internal/logger"
	"github.com/nguyentantai21042004/audioscribe/internal/stt"
	"github.com/nguyentantai21042004/audioscribe/internal/transcript"
)

// Run transcribes every path in order. Cancelling ctx stops the batch before
// the next file starts; a request already in flight is allowed to finish.
func (p *implProcessor) Run(ctx context.Context, paths []string) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrBatchInProgress
	}
	defer p.running.Store(false)

	log := p.logger.With("run_id", uuid.NewString())
	startTime := time.Now()
	log.Info(ctx, "Batch started: %d file(s), output %s", len(paths), p.outputDir)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			log.Warn(ctx, "Batch cancelled after %d of %d file(s)", i, len(paths))
			return fmt.Errorf("batch cancelled before %s: %w", filepath.Base(path), err)
		}

		if err := p.processFile(ctx, log, path); err != nil {
			log.Error(ctx, "Batch aborted at %s: %v", path, err)
			return err
		}
	}

	log.Info(ctx, "Batch completed: %d file(s) in %s", len(paths), time.Since(startTime).Round(time.Millisecond))
	return nil
}

func (p *implProcessor) processFile(ctx context.Context, log logger.Logger, path string) error {
	name := filepath.Base(path)
	base := strings.TrimSuffix(name, filepath.Ext(name))

	p.report("Starting processing of %s...", name)
	p.probe(ctx, log, path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p.report("Uploading %s to API...", name)
	result, err := p.transcriber.Transcribe(context.WithoutCancel(ctx), stt.Request{
		Filename: name,
		Audio:    f,
	})
	if err != nil {
		return fmt.Errorf("transcribe %s: %w", name, err)
	}
	p.report("Received response for %s...", name)
	log.Debug(ctx, "%s: %d segment(s), language=%q, duration=%.2fs",
		name, len(result.Segments), result.Language, result.Duration)

	mdPath := filepath.Join(p.outputDir, base+".md")
	p.report("Saving transcription to %s...", mdPath)
	if err := writeFile(mdPath, transcript.RenderMarkdown(base, result)); err != nil {
		return err
	}

	srtPath := filepath.Join(p.outputDir, base+".srt")
	p.report("Saving SRT file to %s...", srtPath)
	if err := writeFile(srtPath, transcript.RenderSRT(result)); err != nil {
		return err
	}

	if p.writeDocx {
		docxPath := filepath.Join(p.outputDir, base+".docx")
		p.report("Saving Word document to %s...", docxPath)
		if err := docx.FromTranscript(docxPath, transcript.Title(base), result); err != nil {
			return fmt.Errorf("write %s: %w", docxPath, err)
		}
	}

	p.report("Completed processing of %s.", name)
	return nil
}

// probe logs stream details when a prober is configured. Failures are not fatal.
func (p *implProcessor) probe(ctx context.Context, log logger.Logger, path string) {
	if p.prober == nil {
		return
	}
	info, err := p.prober.Probe(ctx, path)
	if err != nil {
		log.Warn(ctx, "Probe failed for %s: %v", path, err)
		return
	}
	log.Debug(ctx, "%s: format=%s codec=%s %dHz %dch %.2fs",
		filepath.Base(path), info.Format, info.Codec, info.SampleRate, info.Channels, info.Duration)
}

func (p *implProcessor) report(format string, args ...interface{}) {
	p.reporter.Report(fmt.Sprintf(format, args...))
}

// writeFile replaces path with content. The returned error wraps *fs.PathError.
func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
