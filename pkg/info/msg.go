package info

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns the logger for progress messages.
// Quiet keeps only warnings and errors, diag adds debug messages.
func New(w io.Writer, quiet, diag bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case diag:
		level = zerolog.DebugLevel
	case quiet:
		level = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
