package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a *slog.Logger writing JSON to stderr and optionally to logFile.
// It also sets the logger as the slog default so package-level slog calls work.
// The returned cleanup func closes the log file if one was opened; callers must
// defer it.
func New(level, logFile string) (*slog.Logger, func(), error) {
	return newLogger(os.Stderr, level, logFile)
}

func newLogger(stderr io.Writer, level, logFile string) (*slog.Logger, func(), error) {
	writers := []io.Writer{stderr}
	cleanup := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, f)
		cleanup = func() { _ = f.Close() }
	}

	w := io.MultiWriter(writers...)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
