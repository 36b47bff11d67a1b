package logger

import (
	"time"

	"github.com/rs/zerolog"
)

// Setup configures the global zerolog logger that the rest of the codebase
// uses through rs/zerolog/log. An empty or unknown level falls back to info.
func Setup(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
}
