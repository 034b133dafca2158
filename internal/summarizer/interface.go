package summarizer

import "context"

// Stats counts the outcome of one SummarizeAll call.
type Stats struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// Summarizer turns transcript documents into LLM-written Markdown summaries.
type Summarizer interface {
	// SummarizeAll summarizes every transcript in transcriptDir into destDir.
	// A file that fails is logged and counted; the rest are still attempted.
	SummarizeAll(ctx context.Context, transcriptDir, destDir string) (Stats, error)
}
