package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05.000"

type implLogger struct {
	zl zerolog.Logger
}

// New creates a Logger writing human readable lines to stdout.
func New(level string) Logger {
	return NewWithWriter(level, "text", os.Stdout)
}

// NewWithWriter creates a Logger writing to w. format is "json" or "text".
func NewWithWriter(level, format string, w io.Writer) Logger {
	out := w
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat, NoColor: !isTerminal(w)}
	}

	return &implLogger{
		zl: zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Logger(),
	}
}

// parseLevel maps a config string to a zerolog level, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.zl.Debug().Msgf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.zl.Info().Msgf(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.zl.Warn().Msgf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.zl.Error().Msgf(msg, args...)
}

func (l *implLogger) With(key string, value interface{}) Logger {
	return &implLogger{zl: l.zl.With().Interface(key, value).Logger()}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
