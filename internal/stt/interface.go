package stt

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/audioscribe/internal/transcript"
)

// Request is one audio upload.
type Request struct {
	Filename string
	Audio    io.Reader
}

// Transcriber sends audio to a speech-to-text service and returns the parsed
// verbose result. Implementations must not retry.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (transcript.Result, error)
}
