package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackTraceHandler(t *testing.T) {
	logRequest := func(level slog.Level, ctx context.Context, wantKeys []string, absentKeys []string) func(t *testing.T) {
		return func(t *testing.T) {
			var buf bytes.Buffer
			log := NewStructuredLogger(slog.LevelInfo, &buf).With(slog.String("component", "test"))

			log.Log(ctx, level, "reservation failed")

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, "test", record["component"])
			for _, key := range wantKeys {
				assert.Contains(t, record, key)
			}
			for _, key := range absentKeys {
				assert.NotContains(t, record, key)
			}
		}
	}

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = WithStep(ctx, "payment")

	t.Run("info_with_context", logRequest(slog.LevelInfo, ctx, []string{"request_id", "step"}, []string{"stack_trace"}))
	t.Run("error_has_stack", logRequest(slog.LevelError, context.Background(), []string{"stack_trace"}, []string{"request_id"}))
}
