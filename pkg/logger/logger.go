package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide logger. Init must be called before use.
var Logger zerolog.Logger

// Init configures the global logger for the given service. In development
// mode output is pretty-printed to the console instead of JSON.
func Init(serviceName string, isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = os.Stdout
	if isDevelopment {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	Logger = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Logger = Logger
}

// SetLevel sets the global log level from its string name. Unknown names
// fall back to info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// WithContext returns a logger enriched with the trace and span ids of the
// span carried by ctx, if any.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Logger
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		l = l.With().
			Str("trace_id", sc.TraceID().String()).
			Str("span_id", sc.SpanID().String()).
			Logger()
	}
	return &l
}

// Info starts an info-level event carrying trace ids from ctx.
func Info(ctx context.Context) *zerolog.Event { return WithContext(ctx).Info() }

// Warn starts a warn-level event carrying trace ids from ctx.
func Warn(ctx context.Context) *zerolog.Event { return WithContext(ctx).Warn() }

// Error starts an error-level event carrying trace ids from ctx.
func Error(ctx context.Context) *zerolog.Event { return WithContext(ctx).Error() }

// Debug starts a debug-level event carrying trace ids from ctx.
func Debug(ctx context.Context) *zerolog.Event { return WithContext(ctx).Debug() }
