package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(level zerolog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logg := New(Options{
		ServiceName: "test",
		Level:       level,
		Output:      &buf,
	})
	return logg, &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestInfoCarriesServiceAndFields(t *testing.T) {
	logg, buf := captureLogger(zerolog.InfoLevel)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"transactions": 100,
		"dataset":      "generate",
	})
	logg.Info(ctx, "dataset loaded")

	entry := lastLine(t, buf)
	assert.Equal(t, "test", entry["service"])
	assert.Equal(t, "dataset loaded", entry["message"])
	assert.Equal(t, float64(100), entry["transactions"])
	assert.Equal(t, "generate", entry["dataset"])
}

func TestContextFieldsAccumulate(t *testing.T) {
	logg, buf := captureLogger(zerolog.InfoLevel)

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithModel(ctx, "Coffee")
	logg.Info(ctx, "training filtered forecast model")

	entry := lastLine(t, buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "Coffee", entry["model_scope"])
}

func TestErrorIncludesStack(t *testing.T) {
	logg, buf := captureLogger(zerolog.InfoLevel)

	logg.Error(context.Background(), "request.error", errors.New("boom"))

	entry := lastLine(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotEmpty(t, entry["stack"])
}

func TestWarnStackOptional(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf, WarnStack: true})
	logg.Warn(context.Background(), "slow query")
	entry := lastLine(t, &buf)
	assert.NotEmpty(t, entry["stack"])

	buf.Reset()
	logg = New(Options{ServiceName: "test", Output: &buf})
	logg.Warn(context.Background(), "slow query")
	entry = lastLine(t, &buf)
	_, hasStack := entry["stack"]
	assert.False(t, hasStack)
}

func TestLevelFiltersOutput(t *testing.T) {
	logg, buf := captureLogger(zerolog.ErrorLevel)

	logg.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}
