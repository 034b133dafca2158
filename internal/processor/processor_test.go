package processor

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audioscribe/internal/config"
	"github.com/nguyentantai21042004/audioscribe/internal/logger"
	"github.com/nguyentantai21042004/audioscribe/internal/media"
	"github.com/nguyentantai21042004/audioscribe/internal/stt"
	"github.com/nguyentantai21042004/audioscribe/internal/transcript"
)

const (
	wantMarkdownA = "# Transcription for a\n\nhello"
	wantSRT       = "1\n00:00:00,000 --> 00:00:01,200\nhello\n\n"
)

var helloResult = transcript.Result{
	Text:     "hello",
	Segments: []transcript.Segment{{Start: 0, End: 1.2, Text: " hello "}},
}

type stubTranscriber struct {
	mu     sync.Mutex
	calls  []string
	bodies []string
	failOn map[string]error
	hook   func(ctx context.Context, filename string)
}

func (s *stubTranscriber) Transcribe(ctx context.Context, req stt.Request) (transcript.Result, error) {
	data, err := io.ReadAll(req.Audio)
	if err != nil {
		return transcript.Result{}, err
	}

	s.mu.Lock()
	s.calls = append(s.calls, req.Filename)
	s.bodies = append(s.bodies, string(data))
	hook := s.hook
	failErr := s.failOn[req.Filename]
	s.mu.Unlock()

	if hook != nil {
		hook(ctx, req.Filename)
	}
	if failErr != nil {
		return transcript.Result{}, failErr
	}
	return helloResult, nil
}

type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Report(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

type fakeProber struct {
	calls int
	err   error
}

func (f *fakeProber) Probe(ctx context.Context, path string) (media.Info, error) {
	f.calls++
	return media.Info{Codec: "mp3"}, f.err
}

type fixture struct {
	inDir  string
	outDir string
	cfg    *config.Config
	log    logger.Logger
}

func newFixture(t *testing.T, files ...string) fixture {
	t.Helper()
	in := t.TempDir()
	out := t.TempDir()
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte("audio:"+name), 0644))
	}

	cfg := config.Default()
	cfg.Paths.Output = out
	return fixture{
		inDir:  in,
		outDir: out,
		cfg:    cfg,
		log:    logger.NewWithWriter("error", "json", io.Discard),
	}
}

func (f fixture) paths(names ...string) []string {
	var paths []string
	for _, n := range names {
		paths = append(paths, filepath.Join(f.inDir, n))
	}
	return paths
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestRunTwoFiles(t *testing.T) {
	fx := newFixture(t, "a.mp3", "b.mp3")
	stub := &stubTranscriber{}

	p := New(fx.cfg, stub, nil, fx.log, nil)
	require.NoError(t, p.Run(context.Background(), fx.paths("a.mp3", "b.mp3")))

	assert.Equal(t, []string{"a.mp3", "b.mp3"}, stub.calls)
	assert.Equal(t, []string{"audio:a.mp3", "audio:b.mp3"}, stub.bodies)

	assert.Equal(t, wantMarkdownA, readOutput(t, fx.outDir, "a.md"))
	assert.Equal(t, "# Transcription for b\n\nhello", readOutput(t, fx.outDir, "b.md"))
	assert.Equal(t, wantSRT, readOutput(t, fx.outDir, "a.srt"))
	assert.Equal(t, wantSRT, readOutput(t, fx.outDir, "b.srt"))
}

func TestRunReportsProgressInOrder(t *testing.T) {
	fx := newFixture(t, "a.mp3")
	rec := &recorder{}

	p := New(fx.cfg, &stubTranscriber{}, nil, fx.log, rec)
	require.NoError(t, p.Run(context.Background(), fx.paths("a.mp3")))

	assert.Equal(t, []string{
		"Starting processing of a.mp3...",
		"Uploading a.mp3 to API...",
		"Received response for a.mp3...",
		"Saving transcription to " + filepath.Join(fx.outDir, "a.md") + "...",
		"Saving SRT file to " + filepath.Join(fx.outDir, "a.srt") + "...",
		"Completed processing of a.mp3.",
	}, rec.msgs)
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	fx := newFixture(t, "a.mp3", "b.mp3", "c.mp3")
	boom := &stt.StatusError{StatusCode: 500, Body: "boom"}
	stub := &stubTranscriber{failOn: map[string]error{"b.mp3": boom}}
	rec := &recorder{}

	p := New(fx.cfg, stub, nil, fx.log, rec)
	err := p.Run(context.Background(), fx.paths("a.mp3", "b.mp3", "c.mp3"))
	require.Error(t, err)
	assert.ErrorIs(t, err, stt.ErrStatus)

	assert.Equal(t, []string{"a.mp3", "b.mp3"}, stub.calls)
	assert.FileExists(t, filepath.Join(fx.outDir, "a.md"))
	assert.FileExists(t, filepath.Join(fx.outDir, "a.srt"))
	assert.NoFileExists(t, filepath.Join(fx.outDir, "b.md"))
	assert.NoFileExists(t, filepath.Join(fx.outDir, "b.srt"))
	assert.NoFileExists(t, filepath.Join(fx.outDir, "c.md"))

	assert.Equal(t, "Uploading b.mp3 to API...", rec.msgs[len(rec.msgs)-1])
}

func TestRunIsIdempotent(t *testing.T) {
	fx := newFixture(t, "a.mp3")
	p := New(fx.cfg, &stubTranscriber{}, nil, fx.log, nil)

	require.NoError(t, p.Run(context.Background(), fx.paths("a.mp3")))
	firstMD := readOutput(t, fx.outDir, "a.md")
	firstSRT := readOutput(t, fx.outDir, "a.srt")

	require.NoError(t, p.Run(context.Background(), fx.paths("a.mp3")))
	assert.Equal(t, firstMD, readOutput(t, fx.outDir, "a.md"))
	assert.Equal(t, firstSRT, readOutput(t, fx.outDir, "a.srt"))
}

func TestRunEmptyBatch(t *testing.T) {
	fx := newFixture(t)
	rec := &recorder{}

	require.NoError(t, New(fx.cfg, &stubTranscriber{}, nil, fx.log, rec).Run(context.Background(), nil))
	assert.Empty(t, rec.msgs)
}

func TestRunCancelledBeforeStart(t *testing.T) {
	fx := newFixture(t, "a.mp3")
	stub := &stubTranscriber{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(fx.cfg, stub, nil, fx.log, nil).Run(ctx, fx.paths("a.mp3"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stub.calls)
}

func TestRunCancelDuringUploadFinishesCurrentFile(t *testing.T) {
	fx := newFixture(t, "a.mp3", "b.mp3")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var uploadCtxErr error
	stub := &stubTranscriber{hook: func(c context.Context, filename string) {
		cancel()
		uploadCtxErr = c.Err()
	}}

	err := New(fx.cfg, stub, nil, fx.log, nil).Run(ctx, fx.paths("a.mp3", "b.mp3"))
	assert.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, uploadCtxErr)
	assert.Equal(t, []string{"a.mp3"}, stub.calls)
	assert.FileExists(t, filepath.Join(fx.outDir, "a.srt"))
	assert.NoFileExists(t, filepath.Join(fx.outDir, "b.md"))
}

func TestRunRejectsConcurrentBatch(t *testing.T) {
	fx := newFixture(t, "a.mp3")
	entered := make(chan struct{})
	release := make(chan struct{})
	stub := &stubTranscriber{hook: func(context.Context, string) {
		close(entered)
		<-release
	}}
	p := New(fx.cfg, stub, nil, fx.log, nil)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background(), fx.paths("a.mp3")) }()

	<-entered
	assert.ErrorIs(t, p.Run(context.Background(), fx.paths("a.mp3")), ErrBatchInProgress)
	close(release)
	require.NoError(t, <-done)

	stub.hook = nil
	assert.NoError(t, p.Run(context.Background(), fx.paths("a.mp3")))
}

func TestRunMissingInput(t *testing.T) {
	fx := newFixture(t)
	stub := &stubTranscriber{}

	err := New(fx.cfg, stub, nil, fx.log, nil).Run(context.Background(), fx.paths("gone.mp3"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Empty(t, stub.calls)
}

func TestRunWriteFailure(t *testing.T) {
	fx := newFixture(t, "a.mp3")
	fx.cfg.Paths.Output = filepath.Join(fx.outDir, "missing")

	err := New(fx.cfg, &stubTranscriber{}, nil, fx.log, nil).Run(context.Background(), fx.paths("a.mp3"))
	require.Error(t, err)

	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr))
}

func TestRunProbeFailureIsNotFatal(t *testing.T) {
	fx := newFixture(t, "a.mp3")
	prober := &fakeProber{err: errors.New("ffprobe missing")}

	require.NoError(t, New(fx.cfg, &stubTranscriber{}, prober, fx.log, nil).Run(context.Background(), fx.paths("a.mp3")))
	assert.Equal(t, 1, prober.calls)
	assert.FileExists(t, filepath.Join(fx.outDir, "a.md"))
}

func TestRunWritesDocx(t *testing.T) {
	fx := newFixture(t, "a.mp3")
	fx.cfg.Output.Docx = true
	rec := &recorder{}

	require.NoError(t, New(fx.cfg, &stubTranscriber{}, nil, fx.log, rec).Run(context.Background(), fx.paths("a.mp3")))
	assert.FileExists(t, filepath.Join(fx.outDir, "a.docx"))
	assert.Contains(t, rec.msgs, "Saving Word document to "+filepath.Join(fx.outDir, "a.docx")+"...")
}

func TestReporterFunc(t *testing.T) {
	var got string
	ReporterFunc(func(msg string) { got = msg }).Report("hi")
	assert.Equal(t, "hi", got)
}
