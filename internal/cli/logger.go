package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel converts a configured level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// ResolveLevel applies command-line verbosity on top of the configured
// level. Each -v lowers the threshold one step; quiet limits output to
// errors.
func ResolveLevel(configured slog.Level, verbose int, quiet bool) slog.Level {
	if quiet {
		return slog.LevelError
	}
	switch {
	case verbose >= 2:
		return slog.LevelDebug
	case verbose == 1 && configured > slog.LevelInfo:
		return slog.LevelInfo
	default:
		return configured
	}
}

// NewLogger creates a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
