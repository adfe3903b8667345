package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounters(t *testing.T) {
	reg := prom.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.IncStageResult("push_branch", ResultSuccess)
	rec.IncStageResult("push_branch", ResultSuccess)
	rec.IncStageResult("generate_docs", ResultFatal)
	rec.IncPublishOutcome("published")
	rec.ObserveStageDuration("push_branch", 150*time.Millisecond)
	rec.ObservePublishDuration(2 * time.Second)

	assert.Equal(t, float64(2), testutil.ToFloat64(rec.stageResults.WithLabelValues("push_branch", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.stageResults.WithLabelValues("generate_docs", "fatal")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.publishOutcome.WithLabelValues("published")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["docpush_stage_duration_seconds"])
	assert.True(t, names["docpush_publish_duration_seconds"])
}

func TestNilRecorderMethodsAreSafe(t *testing.T) {
	var rec *PrometheusRecorder
	rec.ObserveStageDuration("x", time.Second)
	rec.ObservePublishDuration(time.Second)
	rec.IncStageResult("x", ResultSuccess)
	rec.IncPublishOutcome("published")
	require.NoError(t, rec.PushToGateway("http://localhost:9091", "docpush"))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("x", time.Second)
	r.IncPublishOutcome("skipped")
}
