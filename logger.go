package glassgen

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pipeline-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithStage adds a stage field to the logger.
func (l *Logger) WithStage(stage string) *Logger {
	return &Logger{
		Logger: l.Logger.With("stage", stage),
	}
}

// WithProperty adds a property field to the logger.
func (l *Logger) WithProperty(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("property", name),
	}
}

// LogStage logs the completion of a pipeline stage.
func (l *Logger) LogStage(ctx context.Context, stage string, rows int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "stage failed",
			"stage", stage,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "stage completed",
			"stage", stage,
			"rows", rows,
			"duration", d,
		)
	}
}

// LogBounds logs the intersected composition bounds.
func (l *Logger) LogBounds(ctx context.Context, oxides []string, upper []float64, feasible bool) {
	if !feasible {
		l.WarnContext(ctx, "intersected bounds sum below one",
			"oxides", oxides,
			"upper", upper,
		)
		return
	}
	l.InfoContext(ctx, "bounds intersected",
		"oxides", len(oxides),
		"upper", upper,
	)
}

// LogScreen logs the outcome of screening.
func (l *Logger) LogScreen(ctx context.Context, passed, total int) {
	if passed == 0 {
		l.WarnContext(ctx, "no composition passed screening",
			"total", total,
		)
	} else {
		l.InfoContext(ctx, "screening completed",
			"passed", passed,
			"total", total,
		)
	}
}
