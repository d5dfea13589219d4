// Package logging configures the process-wide zerolog logger and hands out
// per-component loggers tagged with the component name.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Setup installs the base logger. Output goes through the console writer
// when w is a terminal and as JSON lines otherwise.
func Setup(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	out := w
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02T15:04:05.000Z"}
	}

	mu.Lock()
	base = zerolog.New(out).With().Timestamp().Logger()
	mu.Unlock()

	zerolog.SetGlobalLevel(ParseLevel(level))
}

// ParseLevel maps a config log level onto zerolog. Unknown values fall
// back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger tagged with the given component name.
func New(tag string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("tag", tag).Logger()
}
