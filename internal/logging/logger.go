// Package logging provides the leveled diagnostic logger used across the
// program. It is backed by zerolog: human-readable console lines (or JSON)
// on stderr, plus an optional append-only JSON log file. Every event carries
// the run_id of the process that produced it.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/backmassage/genretrends/internal/config"
	"github.com/backmassage/genretrends/internal/term"
)

const consoleTimeFormat = "2006-01-02 15:04:05"

// Logger writes leveled, printf-style diagnostics. The zero value is not
// usable; build one with NewLogger, New or Nop.
type Logger struct {
	zl zerolog.Logger

	mu   *sync.Mutex
	file *os.File
}

// NewLogger configures colors from cfg and builds the stderr logger, opening
// cfg.Log.File for appending when set. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	color := term.StderrColor(cfg.Log.Color)

	var console io.Writer = os.Stderr
	if cfg.Log.Format != config.LogFormatJSON {
		console = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: consoleTimeFormat,
			NoColor:    !color,
		}
	}

	l := &Logger{mu: &sync.Mutex{}}
	writers := []io.Writer{console}
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		writers = append(writers, f)
	}

	l.zl = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Log.Level)).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
	return l, nil
}

// New returns a JSON logger writing to w at the given level. Meant for
// tests and embedding.
func New(w io.Writer, level string) *Logger {
	return &Logger{
		zl: zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger(),
		mu: &sync.Mutex{},
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop(), mu: &sync.Mutex{}}
}

// ParseLevel converts a level name to a zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

// Success logs at info level, tagged status=success.
func (l *Logger) Success(format string, args ...any) {
	l.zl.Info().Str("status", "success").Msgf(format, args...)
}

// Warn logs at warn level. Recoverable per-row problems go here.
func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

// Debug logs at debug level; dropped unless the level is debug or lower.
func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}
