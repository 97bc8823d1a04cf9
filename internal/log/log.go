// Package log configures structured logging for tally using log/slog.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output is written to stderr using slog.TextHandler.
func Setup(verbose, quiet bool) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, FormatText, Level(verbose, quiet))))
}

// SetupFormat is Setup with a selectable handler format ("text" or "json").
func SetupFormat(verbose, quiet bool, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	slog.SetDefault(slog.New(NewHandler(os.Stderr, format, Level(verbose, quiet))))
	return nil
}

// Level maps the verbosity flags to a slog level. Quiet wins over verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewHandler returns a text or JSON handler writing to w at the given level.
// Unknown formats fall back to text.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ValidateFormat reports whether format is a supported log format.
func ValidateFormat(format string) error {
	switch format {
	case "", FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q (must be text or json)", format)
	}
}
