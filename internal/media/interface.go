// Package media inspects audio inputs with ffprobe before they are uploaded.
package media

import "context"

// Info is the subset of ffprobe output that is logged for each input.
type Info struct {
	Format     string
	Codec      string
	SampleRate int
	Channels   int
	Duration   float64
}

// Prober reads stream information from an audio file.
type Prober interface {
	Probe(ctx context.Context, path string) (Info, error)
}
