package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingAPIKey is returned before any request is made when no
	// transcription credential is configured.
	ErrMissingAPIKey = errors.New("transcription API key is not configured (set api.key or OPENAI_API_KEY)")

	// ErrMissingGeminiKey is returned by the summarize command when no Gemini key is configured.
	ErrMissingGeminiKey = errors.New("gemini API key is not configured (set gemini.api_keys or GEMINI_API_KEYS)")
)

const (
	DefaultModel          = "whisper-1"
	DefaultResponseFormat = "verbose_json"
	DefaultGeminiModel    = "gemini-2.5-flash"
)

// DefaultExtensions is the audio allow-list used when none is configured.
var DefaultExtensions = []string{".mp3", ".wav", ".flac"}

type Config struct {
	API       APIConfig       `yaml:"api"`
	Paths     PathsConfig     `yaml:"paths"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Output    OutputConfig    `yaml:"output"`
	Media     MediaConfig     `yaml:"media"`
	Logging   LoggingConfig   `yaml:"logging"`
	Gemini    GeminiConfig    `yaml:"gemini"`
}

type APIConfig struct {
	Key                   string `yaml:"key"`
	BaseURL               string `yaml:"base_url" validate:"omitempty,url"`
	Organization          string `yaml:"organization"`
	Model                 string `yaml:"model"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds" validate:"gte=0"`
}

type PathsConfig struct {
	Target string `yaml:"target"`
	Output string `yaml:"output"`
	State  string `yaml:"state"`
}

type DiscoveryConfig struct {
	Extensions      []string `yaml:"extensions" validate:"min=1,dive,startswith=."`
	CaseInsensitive bool     `yaml:"case_insensitive"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

type MediaConfig struct {
	Probe       bool   `yaml:"probe"`
	FFprobePath string `yaml:"ffprobe_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
	BaseURL string   `yaml:"base_url" validate:"omitempty,url"`
}

// Default returns a Config with every optional field filled in.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path, overlays the environment and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := &Config{}
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// LoadDotEnv loads KEY=value files into the process environment. Variables that
// are already set win. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if fi, err := os.Stat(p); err != nil || fi.IsDir() {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

// DefaultDotEnvPaths lists the env files consulted at startup, in order.
func DefaultDotEnvPaths() []string {
	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".audioscribe", ".env"))
	}
	return paths
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" && c.API.Key == "" {
		c.API.Key = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); v != "" && c.API.BaseURL == "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEYS")); v != "" && len(c.Gemini.APIKeys) == 0 {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, k)
			}
		}
	}
}

func (c *Config) applyDefaults() {
	if c.API.Model == "" {
		c.API.Model = DefaultModel
	}
	if c.API.RequestTimeoutSeconds == 0 {
		c.API.RequestTimeoutSeconds = 600
	}
	if len(c.Discovery.Extensions) == 0 {
		c.Discovery.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if c.Paths.State == "" {
		c.Paths.State = defaultStatePath()
	}
	if c.Media.FFprobePath == "" {
		c.Media.FFprobePath = "ffprobe"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultGeminiModel
	}
}

// Validate fills defaults and checks the structure of the configuration.
// Credentials are checked separately by RequireAPIKey and RequireGemini so
// that commands only demand what they use.
func (c *Config) Validate() error {
	c.applyDefaults()

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config field %s: failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// RequireAPIKey reports ErrMissingAPIKey when no transcription key is set.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// RequireGemini reports ErrMissingGeminiKey when no summarizer key is set.
func (c *Config) RequireGemini() error {
	for _, k := range c.Gemini.APIKeys {
		if strings.TrimSpace(k) != "" {
			return nil
		}
	}
	return ErrMissingGeminiKey
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".audioscribe-state.yaml"
	}
	return filepath.Join(home, ".audioscribe", "state.yaml")
}
