package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log output formats accepted by ConfigureLogging.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// ConfigureLogging sets up the global zerolog logger. An empty level means info
// and an empty format means json. A nil writer logs to stderr.
func ConfigureLogging(level, format string, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}

	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	switch strings.ToLower(format) {
	case "", LogFormatJSON:
	case LogFormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	default:
		return fmt.Errorf("invalid log format %q (want %s or %s)", format, LogFormatJSON, LogFormatConsole)
	}

	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
