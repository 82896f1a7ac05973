package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05"

// Logger wraps zerolog so components receive one explicit logging handle.
type Logger struct {
	zlog   zerolog.Logger
	closer io.Closer
}

// New logs human-readable lines to w at the given level.
func New(w io.Writer, level zerolog.Level) *Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: timeFormat,
		NoColor:    true,
	}
	return &Logger{
		zlog: zerolog.New(output).Level(level).With().Timestamp().Logger(),
	}
}

// NewFile appends to path. The terminal UI owns stdout, so interactive
// sessions log to a file.
func NewFile(path string, level zerolog.Level) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(f, level)
	l.closer = f
	return l, nil
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// ParseLevel accepts zerolog level names; an empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func (l *Logger) Debug() *zerolog.Event { return l.zlog.Debug() }

func (l *Logger) Info() *zerolog.Event { return l.zlog.Info() }

func (l *Logger) Warn() *zerolog.Event { return l.zlog.Warn() }

func (l *Logger) Error() *zerolog.Event { return l.zlog.Error() }

// With returns a child logger carrying component as a field.
func (l *Logger) With(component string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("component", component).Logger()}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
