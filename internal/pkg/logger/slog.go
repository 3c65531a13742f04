package logger

import (
	"context"
	"io"
	"log/slog"
	"runtime"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	StepKey      contextKey = "step"
)

// StackTraceHandler is a handler that adds stack trace to error records
// and extracts request_id and the booking step from context
type StackTraceHandler struct {
	slog.Handler
}

func (h *StackTraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
			r.AddAttrs(slog.String("request_id", reqID))
		}

		if step, ok := ctx.Value(StepKey).(string); ok {
			r.AddAttrs(slog.String("step", step))
		}
	}

	if r.Level >= slog.LevelError {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		r.AddAttrs(slog.String("stack_trace", string(buf[:n])))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *StackTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StackTraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *StackTraceHandler) WithGroup(name string) slog.Handler {
	return &StackTraceHandler{Handler: h.Handler.WithGroup(name)}
}

// WithStep tags log records written with ctx with the booking step.
func WithStep(ctx context.Context, step string) context.Context {
	return context.WithValue(ctx, StepKey, step)
}

// NewStructuredLogger builds the JSON logger writing to w.
func NewStructuredLogger(level slog.Leveler, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if level.Level() == slog.LevelDebug {
		opts.AddSource = true
	}

	jsonHandler := slog.NewJSONHandler(w, opts)

	return slog.New(&StackTraceHandler{Handler: jsonHandler})
}

// InitStructuredLogger initialize structured logger
func InitStructuredLogger(level slog.Leveler, w io.Writer) {
	slog.SetDefault(NewStructuredLogger(level, w))
}
