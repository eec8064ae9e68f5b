package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/pocketbank/internal/domain"
)

// Config holds logger configuration.
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // json, console
	Output io.Writer // defaults to os.Stdout
}

// New creates a new zerolog logger based on config.
func New(cfg Config) zerolog.Logger {
	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.Output != nil,
		}
	}

	level := parseLevel(cfg.Level)

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// WithRequest returns the global logger enriched with the request id and
// acting user carried by ctx.
func WithRequest(ctx context.Context) zerolog.Logger {
	return FromContext(ctx, log.Logger)
}

// FromContext enriches base with the request id and acting user carried by ctx.
func FromContext(ctx context.Context, base zerolog.Logger) zerolog.Logger {
	lc := base.With()

	if id := middleware.GetReqID(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}

	if actor := domain.ActorFromContext(ctx); actor != domain.SystemActor {
		lc = lc.Str("actor", actor)
	}

	return lc.Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
