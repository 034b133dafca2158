package stt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"

	"github.com/nguyentantai21042004/audioscribe/internal/config"
	"github.com/nguyentantai21042004/audioscribe/internal/transcript"
)

// Transcribe uploads req.Audio as multipart form data with the configured
// model and response_format=verbose_json.
func (t *implTranscriber) Transcribe(ctx context.Context, req Request) (transcript.Result, error) {
	params := openai.AudioTranscriptionNewParams{
		File:           openai.File(req.Audio, req.Filename, ""),
		Model:          openai.AudioModel(t.model),
		ResponseFormat: openai.AudioResponseFormat(config.DefaultResponseFormat),
	}

	var (
		raw  []byte
		resp *http.Response
	)
	_, err := t.client.Audio.Transcriptions.New(ctx, params,
		option.WithResponseBodyInto(&raw),
		option.WithResponseInto(&resp),
	)
	if resp != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return transcript.Result{}, statusError(resp, raw, err)
	}
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return transcript.Result{}, &StatusError{StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON()}
		}
		return transcript.Result{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return ParseVerbose(raw)
}

func statusError(resp *http.Response, raw []byte, err error) *StatusError {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.RawJSON() != "" {
		return &StatusError{StatusCode: resp.StatusCode, Body: apiErr.RawJSON()}
	}

	se := &StatusError{StatusCode: resp.StatusCode}
	if len(raw) > 0 {
		se.Body = strings.TrimSpace(string(raw))
	} else if resp.Body != nil {
		if b, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil {
			se.Body = strings.TrimSpace(string(b))
		}
	}
	return se
}

// ParseVerbose extracts the full text and ordered segments from a
// verbose_json body. start and end may be JSON numbers or numeric strings.
func ParseVerbose(raw []byte) (transcript.Result, error) {
	if !gjson.ValidBytes(raw) {
		return transcript.Result{}, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}
	root := gjson.ParseBytes(raw)

	text := root.Get("text")
	if text.Type != gjson.String {
		return transcript.Result{}, fmt.Errorf("%w: missing string field \"text\"", ErrMalformedResponse)
	}

	segs := root.Get("segments")
	if !segs.IsArray() {
		return transcript.Result{}, fmt.Errorf("%w: missing array field \"segments\"", ErrMalformedResponse)
	}

	result := transcript.Result{
		Text:     text.String(),
		Language: root.Get("language").String(),
		Duration: root.Get("duration").Float(),
	}

	for i, s := range segs.Array() {
		start, err := seconds(s, "start")
		if err != nil {
			return transcript.Result{}, fmt.Errorf("segment %d: %w", i, err)
		}
		end, err := seconds(s, "end")
		if err != nil {
			return transcript.Result{}, fmt.Errorf("segment %d: %w", i, err)
		}
		segText := s.Get("text")
		if segText.Type != gjson.String {
			return transcript.Result{}, fmt.Errorf("segment %d: %w: missing string field \"text\"", i, ErrMalformedResponse)
		}

		result.Segments = append(result.Segments, transcript.Segment{
			Start: start,
			End:   end,
			Text:  segText.String(),
		})
	}

	return result, nil
}

func seconds(seg gjson.Result, field string) (float64, error) {
	v := seg.Get(field)
	switch v.Type {
	case gjson.Number:
		return v.Num, nil
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field %q is not numeric: %q", ErrMalformedResponse, field, v.Str)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: missing numeric field %q", ErrMalformedResponse, field)
	}
}
