package stt

import (
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/nguyentantai21042004/audioscribe/internal/config"
)

type implTranscriber struct {
	client openai.Client
	model  string
}

// New creates a Transcriber for an OpenAI-compatible /audio/transcriptions
// endpoint. It fails with config.ErrMissingAPIKey when no key is set so that
// nothing reaches the network without a credential.
func New(cfg config.APIConfig, extra ...option.RequestOption) (Transcriber, error) {
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		return nil, config.ErrMissingAPIKey
	}

	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Organization != "" {
		opts = append(opts, option.WithOrganization(cfg.Organization))
	}
	if cfg.RequestTimeoutSeconds > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(cfg.RequestTimeoutSeconds)*time.Second))
	}
	opts = append(opts, extra...)

	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}

	return &implTranscriber{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}
