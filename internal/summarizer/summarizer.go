package summarizer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/audioscribe/internal/docx"
	"github.com/nguyentantai21042004/audioscribe/internal/transcript"
)

const (
	transcriptExt = ".md"
	summarySuffix = ".summary"
)

const summaryPrompt = `You are an expert at analysing recorded talks and meetings. Using the transcript below, write a DETAILED summary in the same language as the transcript.

Requirements:
- Start with a one-sentence overview of the topic
- List ALL main points in the order they appear
- Explain each point, including important caveats, tips and warnings
- Keep technical terms as they are spoken
- Use Markdown: headings, bullet points, bold for key terms
- Finish with an "Important notes" section when something needs emphasis

Transcript:
---
%s
---`

// SummarizeAll reads every <name>.md transcript from transcriptDir, asks
// Gemini for a summary and writes <name>.summary.md into destDir. Transcripts
// that already have a summary are skipped.
func (s *implSummarizer) SummarizeAll(ctx context.Context, transcriptDir, destDir string) (Stats, error) {
	var stats Stats

	files, err := discoverTranscripts(transcriptDir)
	if err != nil {
		return stats, fmt.Errorf("discover transcripts: %w", err)
	}
	if len(files) == 0 {
		s.logger.Info(ctx, "No transcripts found in %s", transcriptDir)
		return stats, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return stats, fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcript(s) to summarize", len(files))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		name := strings.TrimSuffix(filepath.Base(path), transcriptExt)
		mdPath := filepath.Join(destDir, name+summarySuffix+transcriptExt)

		if _, err := os.Stat(mdPath); err == nil {
			s.logger.Debug(ctx, "[%d/%d] Summary exists, skipping: %s", i+1, len(files), name)
			stats.Skipped++
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), name)
		if err := s.summarizeFile(ctx, path, name, mdPath); err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			stats.Failed++
			continue
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
		stats.Succeeded++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d skipped, %d failed",
		stats.Succeeded, stats.Skipped, stats.Failed)
	return stats, nil
}

func (s *implSummarizer) summarizeFile(ctx context.Context, path, name, mdPath string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	summary, err := s.summarize(ctx, string(content))
	if err != nil {
		return err
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if s.writeDocx {
		docxPath := strings.TrimSuffix(mdPath, transcriptExt) + ".docx"
		if err := docx.FromMarkdown(docxPath, name, summary); err != nil {
			s.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
		}
	}
	return nil
}

// summarize tries each key at most once, rotating on quota errors. Other
// errors are returned immediately.
func (s *implSummarizer) summarize(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, text)

	var lastErr error
	for range len(s.apiKeys) {
		summary, err := s.generate(ctx, s.apiKeys[s.currentKey], s.model, prompt)
		if err == nil {
			if strings.TrimSpace(summary) == "" {
				return "", errors.New("empty response from Gemini")
			}
			return summary, nil
		}
		if !isQuotaError(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}

		s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
		s.rotateKey()
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) callGemini(ctx context.Context, key, model, prompt string) (string, error) {
	cc := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if s.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

func isQuotaError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

// discoverTranscripts lists <name>.md files that start with the transcript
// header, excluding summaries and hidden files, sorted by name.
func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if filepath.Ext(name) != transcriptExt || strings.HasSuffix(name, summarySuffix+transcriptExt) {
			continue
		}

		path := filepath.Join(dir, name)
		ok, err := isTranscript(path)
		if err != nil {
			return nil, err
		}
		if ok {
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// isTranscript reports whether the first line of path is a transcript header.
func isTranscript(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.HasPrefix(line, transcript.MarkdownHeader("")), nil
}
