// Package logger implements a logging adapter using log/slog and tint.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"go.trai.ch/brew/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// zerr.Error implements it.
type messager interface {
	Message() string
}

// metadataer describes an error carrying key-value context. zerr.Error implements it.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog with a tint handler.
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	mu     sync.RWMutex
}

var _ ports.Logger = (*Logger)(nil)

// New creates a new Logger writing to stderr.
func New() *Logger {
	l := &Logger{level: &slog.LevelVar{}}
	l.level.Set(slog.LevelInfo)
	l.SetOutput(nil)
	return l
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used. Colors are only emitted for terminals.
func (l *Logger) SetOutput(w io.Writer) {
	noColor := true
	if w == nil {
		w = colorable.NewColorable(os.Stderr)
		noColor = !isatty.IsTerminal(os.Stderr.Fd())
	}
	if os.Getenv("NO_COLOR") != "" {
		noColor = true
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      l.level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(handler)
}

// SetVerbose enables or disables debug output.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error and its causes. Metadata attached anywhere in the chain
// is logged as attributes; the outermost value wins for a repeated key.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(formatError(err), errorAttrs(err)...)
}

func errorAttrs(err error) []any {
	values := make(map[string]any)
	for current := err; current != nil; current = errors.Unwrap(current) {
		m, ok := current.(metadataer)
		if !ok {
			continue
		}
		for k, v := range m.Metadata() {
			if _, seen := values[k]; !seen {
				values[k] = v
			}
		}
	}

	attrs := make([]any, 0, len(values))
	for _, k := range slices.Sorted(maps.Keys(values)) {
		attrs = append(attrs, slog.Any(k, values[k]))
	}
	return attrs
}

// formatError renders the error chain, one cause per line.
func formatError(err error) string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		if msg := m.Message(); msg != "" {
			messages = append(messages, msg)
		}
		current = errors.Unwrap(current)
	}

	lines := make([]string, 0, len(messages)+1)
	for i, msg := range messages {
		switch i {
		case 0:
			lines = append(lines, msg)
		case 1:
			lines = append(lines, "  caused by: "+msg)
		default:
			lines = append(lines, "  → "+msg)
		}
	}
	return strings.Join(lines, "\n")
}
