package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

var (
	mu   sync.Mutex
	base *slog.Logger
)

// Init configures the process logger once. Later calls return the same
// logger. An empty filePath logs to stdout only.
func Init(component, filePath string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base != nil {
		return base
	}

	var out io.Writer = os.Stdout
	if filePath != "" {
		_ = os.MkdirAll(filepath.Dir(filePath), 0o755)
		rot := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		out = io.MultiWriter(os.Stdout, rot)
	}

	h := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	base = slog.New(h).With("service", component)
	return base
}

// Base returns the process logger, falling back to stdout-only JSON when
// Init was never called (tests, tools).
func Base() *slog.Logger {
	mu.Lock()
	l := base
	mu.Unlock()
	if l == nil {
		return Init("order-svc", "")
	}
	return l
}

func New(component string) *slog.Logger {
	return Base().With("component", component)
}

func WithCtx(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx returns the request-scoped logger or the process logger.
func FromCtx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return Base()
}
