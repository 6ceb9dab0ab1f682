package promcollector

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gather returns the metric families of reg keyed by name.
func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.RecordStage("sample", 10*time.Millisecond, nil)
	c.RecordStage("evaluate", time.Millisecond, errors.New("boom"))
	c.RecordEvaluate("E", 100, time.Millisecond, nil)
	c.RecordEvaluate("E", 100, time.Millisecond, errors.New("boom"))
	c.RecordScreen(100, 25)

	mfs := gather(t, reg)

	rows := mfs["glassgen_evaluated_rows_total"]
	require.NotNil(t, rows)
	require.Len(t, rows.GetMetric(), 1)
	assert.Equal(t, 100.0, rows.GetMetric()[0].GetCounter().GetValue())

	assert.Equal(t, 100.0, mfs["glassgen_screened_rows_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 25.0, mfs["glassgen_passed_rows_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 0.25, mfs["glassgen_pass_ratio"].GetMetric()[0].GetGauge().GetValue())

	stages := mfs["glassgen_stage_duration_seconds"]
	require.NotNil(t, stages)
	assert.Len(t, stages.GetMetric(), 2)

	c.RecordScreen(0, 0)
	mfs = gather(t, reg)
	assert.Equal(t, 0.0, mfs["glassgen_pass_ratio"].GetMetric()[0].GetGauge().GetValue())
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}
