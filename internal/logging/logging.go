package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger.
// Output is human readable on w unless BART_LOG_FORMAT=JSON; debug logging
// is enabled by BART_DEBUG=YES or the debug argument.
func Setup(w io.Writer, debug bool) {
	if os.Getenv("BART_LOG_FORMAT") == "JSON" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	if debug || os.Getenv("BART_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}
