package glassgen

import "log/slog"

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workers          int
}

// Option configures a Pipeline.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring stages.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &glassgen.BasicMetricsCollector{}
//	p, _ := glassgen.New(cfg, glassgen.WithMetricsCollector(metrics))
//	// ... run p ...
//	stats := metrics.GetStats()
//	fmt.Printf("Passed: %d of %d\n", stats.PassedRows, stats.ScreenedRows)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for stages.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithWorkers overrides the sampler worker count.
// Results do not depend on it.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
