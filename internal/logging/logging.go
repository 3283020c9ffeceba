package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Log output goes to stderr so stdout stays
// reserved for the JSON job result consumed by the workflow tool.
// VIDPIPE_LOG_LEVEL controls the level: debug, info, warn, error.
func New() zerolog.Logger {
	switch os.Getenv("VIDPIPE_LOG_LEVEL") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
