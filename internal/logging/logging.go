// Package logging builds the structured logger of the ppgview command.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/natefinch/lumberjack"

	"github.com/cwbudde/algo-ppg/internal/config"
)

// SessionKey is the attribute carrying the per-run session id.
const SessionKey = "session"

// ErrLevel is returned for an unknown level name.
var ErrLevel = errors.New("logging: unknown level")

// ParseLevel accepts debug, info, warn and error in any case. An empty
// name means info.
func ParseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(name) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrLevel, name)
	}
	return lvl, nil
}

// Logger is a JSON slog.Logger together with its output.
type Logger struct {
	*slog.Logger
	Session string

	file *lumberjack.Logger
}

// Close releases the log file, if any. The fallback writer is left open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New returns a JSON logger writing to the rotating file cfg.File, or to
// fallback when no file is configured. Every record carries a fresh
// session id.
func New(cfg config.LogConfig, fallback io.Writer) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	out := fallback
	if out == nil {
		out = os.Stderr
	}
	var file *lumberjack.Logger
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		out = file
	}

	session := uuid.NewString()
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceTimeAttr,
	})

	return &Logger{
		Logger:  slog.New(handler).With(slog.String(SessionKey, session)),
		Session: session,
		file:    file,
	}, nil
}

func replaceTimeAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		return slog.String(slog.TimeKey, a.Value.Time().Local().Format("2006-01-02 15:04:05.000"))
	}
	return a
}
