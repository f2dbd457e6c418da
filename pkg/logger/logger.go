// Package logger builds the zerolog root logger the rest of the service
// derives its loggers from.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a structured JSON logger at the given level. In development
// mode output is rendered as coloured console lines instead. Unknown level
// strings fall back to info.
func New(level string, development bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out = os.Stdout
	logger := zerolog.New(out)
	if development {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	return logger.
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
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
