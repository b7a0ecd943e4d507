// Package logging sets up the gauge process logger. The TUI owns the
// terminal, so all diagnostics go to a rotating file instead of stderr.
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "gauge.log"

// New returns a logger writing structured lines to the given file path,
// rotated by size. An empty path selects the default location under the
// user's data directory. Logging must never take the process down, so any
// setup problem degrades to a no-op logger.
func New(path string) zerolog.Logger {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		var err error
		resolved, err = defaultPath()
		if err != nil {
			return zerolog.Nop()
		}
	}

	sink := &lumberjack.Logger{
		Filename:   resolved,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}

	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(sink).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything. Used in tests and when no
// log destination is available.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func defaultPath() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(base, "gauge")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultLogFile), nil
}
