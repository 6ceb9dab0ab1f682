package glassgen

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stage names reported to loggers and metrics collectors.
const (
	StageBounds   = "bounds"
	StageSample   = "sample"
	StageEvaluate = "evaluate"
	StageScreen   = "screen"
)

// MetricsCollector defines an interface for collecting pipeline metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus (see package promcollector).
type MetricsCollector interface {
	// RecordStage is called after each stage. err is nil if successful.
	RecordStage(stage string, duration time.Duration, err error)

	// RecordEvaluate is called after each property evaluation.
	RecordEvaluate(property string, rows int, duration time.Duration, err error)

	// RecordScreen is called after screening with the number of screened
	// and passing rows.
	RecordScreen(total, passed int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordStage(string, time.Duration, error)         {}
func (NoopMetricsCollector) RecordEvaluate(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordScreen(int, int)                            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount       atomic.Int64
	StageErrors    atomic.Int64
	EvaluatedRows  atomic.Int64
	ScreenedRows   atomic.Int64
	PassedRows     atomic.Int64
	mu             sync.Mutex
	stageNanos     map[string]int64
	propertyNanos  map[string]int64
	propertyErrors map[string]int64
}

// RecordStage implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStage(stage string, duration time.Duration, err error) {
	if stage == StageBounds {
		b.RunCount.Add(1)
	}
	if err != nil {
		b.StageErrors.Add(1)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stageNanos == nil {
		b.stageNanos = make(map[string]int64)
	}
	b.stageNanos[stage] += duration.Nanoseconds()
}

// RecordEvaluate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluate(property string, rows int, duration time.Duration, err error) {
	b.EvaluatedRows.Add(int64(rows))
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.propertyNanos == nil {
		b.propertyNanos = make(map[string]int64)
		b.propertyErrors = make(map[string]int64)
	}
	b.propertyNanos[property] += duration.Nanoseconds()
	if err != nil {
		b.propertyErrors[property]++
	}
}

// RecordScreen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScreen(total, passed int) {
	b.ScreenedRows.Add(int64(total))
	b.PassedRows.Add(int64(passed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := BasicMetricsStats{
		RunCount:       b.RunCount.Load(),
		StageErrors:    b.StageErrors.Load(),
		EvaluatedRows:  b.EvaluatedRows.Load(),
		ScreenedRows:   b.ScreenedRows.Load(),
		PassedRows:     b.PassedRows.Load(),
		StageNanos:     make(map[string]int64, len(b.stageNanos)),
		PropertyNanos:  make(map[string]int64, len(b.propertyNanos)),
		PropertyErrors: make(map[string]int64, len(b.propertyErrors)),
	}
	for k, v := range b.stageNanos {
		s.StageNanos[k] = v
	}
	for k, v := range b.propertyNanos {
		s.PropertyNanos[k] = v
	}
	for k, v := range b.propertyErrors {
		s.PropertyErrors[k] = v
	}
	return s
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount       int64
	StageErrors    int64
	EvaluatedRows  int64
	ScreenedRows   int64
	PassedRows     int64
	StageNanos     map[string]int64
	PropertyNanos  map[string]int64
	PropertyErrors map[string]int64
}
