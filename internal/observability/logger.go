package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/gsod-archive-etl/internal/config"
)

// NewLogger builds the run logger: structured slog output at the configured
// level and format, dual-sinked to stdout and the configured log file.
//
// Logging setup never aborts the run: a log file that cannot be opened
// degrades to console-only. The returned closer releases the file sink and
// is safe to call when no file was opened.
func NewLogger(cfg *config.Config) (*slog.Logger, func() error) {
	var sink io.Writer = os.Stdout
	closer := func() error { return nil }

	if cfg.LogFile != "" {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file unavailable, console only: %v\n", err)
		} else {
			sink = io.MultiWriter(os.Stdout, f)
			closer = f.Close
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = slog.NewTextHandler(sink, opts)
	} else {
		handler = slog.NewJSONHandler(sink, opts)
	}
	return slog.New(handler), closer
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
