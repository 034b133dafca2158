package stt

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audioscribe/internal/config"
	"github.com/nguyentantai21042004/audioscribe/internal/transcript"
)

const helloBody = `{"task":"transcribe","language":"english","duration":1.2,"text":"hello","segments":[{"id":0,"start":0,"end":1.2,"text":" hello"}]}`

func newTestTranscriber(t *testing.T, handler http.HandlerFunc) Transcriber {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tr, err := New(config.APIConfig{
		Key:     "sk-test",
		BaseURL: srv.URL + "/v1/",
	})
	require.NoError(t, err)
	return tr
}

func TestTranscribeSendsMultipartUpload(t *testing.T) {
	var calls int32
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "talk.mp3", hdr.Filename)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "ID3-audio-bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, helloBody)
	})

	res, err := tr.Transcribe(context.Background(), Request{
		Filename: "talk.mp3",
		Audio:    strings.NewReader("ID3-audio-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "hello", res.Text)
	assert.Equal(t, "english", res.Language)
	assert.Equal(t, []transcript.Segment{{Start: 0, End: 1.2, Text: " hello"}}, res.Segments)
}

func TestTranscribeNonSuccessStatusIsNotRetried(t *testing.T) {
	var calls int32
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
	})

	_, err := tr.Transcribe(context.Background(), Request{Filename: "a.mp3", Audio: strings.NewReader("x")})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, se.Body, "boom")
	assert.ErrorIs(t, err, ErrStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTranscribeUnauthorizedPlainBody(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "nope")
	})

	_, err := tr.Transcribe(context.Background(), Request{Filename: "a.mp3", Audio: strings.NewReader("x")})
	var se *StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}

func TestTranscribeMalformedBody(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"text":"hello"}`)
	})

	_, err := tr.Transcribe(context.Background(), Request{Filename: "a.mp3", Audio: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestTranscribeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	tr, err := New(config.APIConfig{Key: "sk-test", BaseURL: url + "/v1/"})
	require.NoError(t, err)

	_, err = tr.Transcribe(context.Background(), Request{Filename: "a.mp3", Audio: strings.NewReader("x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(config.APIConfig{Key: "   "})
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestParseVerbose(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    transcript.Result
		wantErr bool
	}{
		{
			name: "numbers",
			body: helloBody,
			want: transcript.Result{
				Text:     "hello",
				Language: "english",
				Duration: 1.2,
				Segments: []transcript.Segment{{Start: 0, End: 1.2, Text: " hello"}},
			},
		},
		{
			name: "numeric strings",
			body: `{"text":"a b","segments":[{"start":"0.5","end":" 2.25 ","text":"a"},{"start":3,"end":"4","text":"b"}]}`,
			want: transcript.Result{
				Text: "a b",
				Segments: []transcript.Segment{
					{Start: 0.5, End: 2.25, Text: "a"},
					{Start: 3, End: 4, Text: "b"},
				},
			},
		},
		{
			name: "empty segments",
			body: `{"text":"","segments":[]}`,
			want: transcript.Result{},
		},
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "missing text", body: `{"segments":[]}`, wantErr: true},
		{name: "text not a string", body: `{"text":5,"segments":[]}`, wantErr: true},
		{name: "missing segments", body: `{"text":"x"}`, wantErr: true},
		{name: "segments not array", body: `{"text":"x","segments":{}}`, wantErr: true},
		{name: "segment missing end", body: `{"text":"x","segments":[{"start":0,"text":"x"}]}`, wantErr: true},
		{name: "segment start not numeric", body: `{"text":"x","segments":[{"start":"soon","end":1,"text":"x"}]}`, wantErr: true},
		{name: "segment missing text", body: `{"text":"x","segments":[{"start":0,"end":1}]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVerbose([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusErrorMessage(t *testing.T) {
	assert.Equal(t, "transcription service returned status 503", (&StatusError{StatusCode: 503}).Error())
	assert.Equal(t, "transcription service returned status 400: bad", (&StatusError{StatusCode: 400, Body: "bad"}).Error())
}
