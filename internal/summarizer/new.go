package summarizer

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/audioscribe/internal/config"
	"github.com/nguyentantai21042004/audioscribe/internal/logger"
)

// generateFunc sends prompt to model using key and returns the response text.
type generateFunc func(ctx context.Context, key, model, prompt string) (string, error)

type implSummarizer struct {
	apiKeys    []string
	currentKey int
	model      string
	baseURL    string
	writeDocx  bool
	logger     logger.Logger
	generate   generateFunc
}

// New creates a Summarizer that rotates through cfg.Gemini.APIKeys when a key
// runs out of quota.
func New(cfg *config.Config, log logger.Logger) (Summarizer, error) {
	var keys []string
	for _, k := range cfg.Gemini.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, config.ErrMissingGeminiKey
	}

	model := cfg.Gemini.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}

	s := &implSummarizer{
		apiKeys:   keys,
		model:     model,
		baseURL:   cfg.Gemini.BaseURL,
		writeDocx: cfg.Output.Docx,
		logger:    log,
	}
	s.generate = s.callGemini
	return s, nil
}
