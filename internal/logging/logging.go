// Package logging builds the single zerolog.Logger instance shared by
// the CLI and every worker, grounded on
// cristian1one-virtual-vectorfs/vvfs/globals.go's GetLogger. Unlike that
// source, which always writes plain text to stderr, New switches between
// a colorized console writer (for interactive/dev use) and raw JSON
// (everywhere else), since the warning/fatal lines in the error-handling
// design need to stay machine-parseable outside a terminal.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a logger at the given level ("debug", "info", "warn",
// "error" — anything else defaults to info) writing pretty console
// output when pretty is true, JSON lines otherwise.
func New(level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var w = os.Stderr
	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
	}
	return logger
}
