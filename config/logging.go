package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var Debug = false

// Log is the process-wide logger. It discards everything until InitLogging
// enables debug output; the TUI owns stdout so nothing is ever written there.
var Log = zerolog.Nop()

// InitLogging opens <dataDir>/debug.log when debug is set and points Log at it.
// The returned closer is a no-op when logging stays disabled.
func InitLogging(dataDir string, debug bool) (io.Closer, error) {
	if !debug {
		return nopCloser{}, nil
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log may contain prompts
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nopCloser{}, fmt.Errorf("could not open debug log at %s: %w", logPath, err)
	}

	Debug = true
	Log = NewLogger(f, zerolog.DebugLevel)
	Log.Info().Str("path", logPath).Msg("debug logging started")
	return f, nil
}

// NewLogger builds a timestamped JSON logger writing to w.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
