package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/Domenick1991/inflight/config"
	"github.com/rs/zerolog"
)

// New builds the process logger and installs it as zerolog's default context logger,
// so zerolog.Ctx on a context without a logger still writes somewhere useful.
func New(cfg config.LogConfig, service string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stderr
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	zerolog.DefaultContextLogger = &logger
	return logger
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
