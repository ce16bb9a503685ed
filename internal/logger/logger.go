// Package logger builds the zerolog logger shared by the store, the catalog
// operations and the CLI.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel keeps logging quiet while the interactive menu is running.
const DefaultLevel = zerolog.WarnLevel

// New returns a logger writing to out at the named level. Unknown or empty
// levels fall back to DefaultLevel. FormatConsole renders human-readable
// lines; any other format writes JSON.
func New(level, format string, out io.Writer) zerolog.Logger {
	if strings.EqualFold(format, FormatConsole) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, falling back to
// DefaultLevel.
func ParseLevel(level string) zerolog.Level {
	if strings.TrimSpace(level) == "" {
		return DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return DefaultLevel
	}
	return lvl
}
