// Package promcollector exports pipeline metrics to Prometheus.
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/glassgen"
)

// Collector implements glassgen.MetricsCollector.
type Collector struct {
	stageLatency    *prometheus.HistogramVec
	evaluateLatency *prometheus.HistogramVec
	evaluatedRows   *prometheus.CounterVec
	screenedRows    prometheus.Counter
	passedRows      prometheus.Counter
	passRatio       prometheus.Gauge
}

var _ glassgen.MetricsCollector = (*Collector)(nil)

// New creates a collector and registers it with reg. A nil reg means
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		stageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "glassgen_stage_duration_seconds",
			Help:    "Duration of pipeline stages",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage", "status"}),
		evaluateLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "glassgen_evaluate_duration_seconds",
			Help:    "Duration of batch property evaluation",
			Buckets: prometheus.DefBuckets,
		}, []string{"property", "status"}),
		evaluatedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "glassgen_evaluated_rows_total",
			Help: "Compositions evaluated per property",
		}, []string{"property"}),
		screenedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "glassgen_screened_rows_total",
			Help: "Compositions screened",
		}),
		passedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "glassgen_passed_rows_total",
			Help: "Compositions inside every enabled window",
		}),
		passRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "glassgen_pass_ratio",
			Help: "Fraction of compositions passing the last screening",
		}),
	}

	for _, m := range []prometheus.Collector{
		c.stageLatency, c.evaluateLatency, c.evaluatedRows,
		c.screenedRows, c.passedRows, c.passRatio,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordStage implements glassgen.MetricsCollector.
func (c *Collector) RecordStage(stage string, d time.Duration, err error) {
	c.stageLatency.WithLabelValues(stage, status(err)).Observe(d.Seconds())
}

// RecordEvaluate implements glassgen.MetricsCollector.
func (c *Collector) RecordEvaluate(property string, rows int, d time.Duration, err error) {
	c.evaluateLatency.WithLabelValues(property, status(err)).Observe(d.Seconds())
	if err == nil {
		c.evaluatedRows.WithLabelValues(property).Add(float64(rows))
	}
}

// RecordScreen implements glassgen.MetricsCollector.
func (c *Collector) RecordScreen(total, passed int) {
	c.screenedRows.Add(float64(total))
	c.passedRows.Add(float64(passed))
	if total > 0 {
		c.passRatio.Set(float64(passed) / float64(total))
	} else {
		c.passRatio.Set(0)
	}
}
