package logging

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

// FromContext returns the logger stored in ctx, enriched with the trace ID
// when one is present. Without a stored logger the zerolog default
// context logger is returned (disabled unless configured globally).
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := zerolog.Nop()
		return &l
	}
	logger := zerolog.Ctx(ctx)
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		l := logger.With().Str("trace_id", traceID).Logger()
		return &l
	}
	return logger
}

// ContextWithTraceID stores traceID in ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace ID in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID already carried by ctx or a new
// ULID when there is none.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return NewULID(time.Now(), rand.Reader)
}

// NewULID returns a ULID string for t using entropy. It panics only if the
// entropy source fails, which crypto/rand does not do in practice.
func NewULID(t time.Time, entropy io.Reader) string {
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		panic(fmt.Sprintf("generating ulid: %v", err))
	}
	return id.String()
}
