// Package logger builds the structured logfmt logger shared by all components.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/go-kit/log"
)

// Service is the value of the "service" key on every log line.
const Service = "weather-station"

type contextKey string

const loggerKey = contextKey("logger")

// New returns a logfmt logger writing to w, stamped with service and UTC time.
func New(w io.Writer) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(w))
	return log.With(l, "service", Service, "ts", log.DefaultTimestampUTC)
}

// FromContext returns the logger stored in ctx. If none is found a new
// stdout logger is returned.
func FromContext(ctx context.Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return log.With(New(os.Stdout), "module", "logger")
}

// ToContext returns a child context carrying l.
func ToContext(ctx context.Context, l log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}
