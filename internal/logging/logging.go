// Package logging builds the structured logger shared by fsshell packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const prefix = "fsshell"

// DefaultLevel is used when no level is configured.
const DefaultLevel = log.WarnLevel

// New creates a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: false,
	})
}

// Default returns a logger on stderr at DefaultLevel.
func Default() *log.Logger {
	return New(os.Stderr, DefaultLevel)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}

// ParseLevel converts a configured level name. Empty means DefaultLevel.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return DefaultLevel, fmt.Errorf("parsing log level %q: %w", s, err)
	}
	return level, nil
}
