package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("validate", 150*time.Millisecond)
	pr.IncStageResult("validate", ResultSuccess)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.AddPagesProcessed("race-guide", 12)
	pr.ObserveBatch(25, 40*time.Millisecond)
	pr.AddIssues("warning", 3)
	pr.AddIssues("error", 0)
	pr.SetAverageScore(91.5)
	pr.IncGateOutcome(true)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"seobuilder_stage_duration_seconds",
		"seobuilder_pages_processed_total",
		"seobuilder_validation_issues_total",
		"seobuilder_catalogue_average_score",
		"seobuilder_gate_outcomes_total",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("x", time.Second)
	pr.AddPagesProcessed("x", 1)
	pr.IncGateOutcome(false)
}

func TestHandler(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.SetAverageScore(88)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "seobuilder_catalogue_average_score")
}

func TestSizeBucket(t *testing.T) {
	assert.Equal(t, "le10", sizeBucket(10))
	assert.Equal(t, "le50", sizeBucket(11))
	assert.Equal(t, "le200", sizeBucket(200))
	assert.Equal(t, "gt200", sizeBucket(201))
}

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
