package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrNoAudioStream is returned when ffprobe finds no audio stream in the file.
var ErrNoAudioStream = errors.New("no audio stream")

// Probe runs:
//
//	ffprobe -v error -select_streams a:0 -show_entries format=format_name,duration:stream=codec_name,sample_rate,channels -of json <path>
func (p *implProber) Probe(ctx context.Context, path string) (Info, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "format=format_name,duration:stream=codec_name,sample_rate,channels",
		"-of", "json",
		path,
	}

	out, err := p.exec.Execute(ctx, p.binary, args...)
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	return parseProbe(out)
}

func parseProbe(out string) (Info, error) {
	if !gjson.Valid(out) {
		return Info{}, fmt.Errorf("parse ffprobe output: invalid JSON")
	}

	root := gjson.Parse(out)
	stream := root.Get("streams.0")
	if !stream.Exists() {
		return Info{}, ErrNoAudioStream
	}

	// ffprobe prints sample_rate and duration as strings; Int/Float convert them.
	return Info{
		Format:     root.Get("format.format_name").String(),
		Codec:      stream.Get("codec_name").String(),
		SampleRate: int(stream.Get("sample_rate").Int()),
		Channels:   int(stream.Get("channels").Int()),
		Duration:   root.Get("format.duration").Float(),
	}, nil
}
