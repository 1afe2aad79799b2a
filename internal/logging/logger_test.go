package logging

import (
	"bytes"
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			res := NewLogger(Config{Level: tt.level})
			assert.Equal(t, tt.want, res.Logger.GetLevel())
			assert.False(t, res.UsingFile)
		})
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ecotrack.log")

	res := NewLogger(Config{Level: "info", Output: OutputFile, File: path})
	t.Cleanup(func() { _ = res.Close() })

	require.True(t, res.UsingFile)
	assert.Equal(t, path, res.FilePath)

	res.Logger.Info().Str("component", "test").Msg("hello")
	require.NoError(t, res.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestNewLogger_FileFallback(t *testing.T) {
	res := NewLogger(Config{Output: OutputFile})
	assert.True(t, res.FallbackUsed)
	assert.False(t, res.UsingFile)
	assert.NotEmpty(t, res.FallbackReason)
}

func TestFromContext_TraceID(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := base.WithContext(context.Background())
	ctx = ContextWithTraceID(ctx, "trace-123")

	FromContext(ctx).Info().Msg("with trace")
	assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)
}

func TestGetOrGenerateTraceID(t *testing.T) {
	ctx := context.Background()
	generated := GetOrGenerateTraceID(ctx)
	_, err := ulid.Parse(generated)
	require.NoError(t, err, "generated trace id should be a ULID")

	ctx = ContextWithTraceID(ctx, "fixed")
	assert.Equal(t, "fixed", GetOrGenerateTraceID(ctx))
}

func TestNewULID_Sortable(t *testing.T) {
	earlier := NewULID(time.Unix(1000, 0), rand.Reader)
	later := NewULID(time.Unix(2000, 0), rand.Reader)
	assert.Less(t, earlier, later)
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(zerolog.New(&buf), "engine")
	l.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"engine"`)
}
