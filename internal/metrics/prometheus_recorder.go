package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration  *prom.HistogramVec
	stageResults   *prom.CounterVec
	buildDuration  prom.Histogram
	pagesProcessed *prom.CounterVec
	batchDuration  *prom.HistogramVec
	issues         *prom.CounterVec
	averageScore   prom.Gauge
	gateOutcomes   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics against reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "seobuilder",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "seobuilder",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "seobuilder",
			Name:      "build_duration_seconds",
			Help:      "Total pipeline duration",
			Buckets:   prom.DefBuckets,
		}),
		pagesProcessed: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "seobuilder",
			Name:      "pages_processed_total",
			Help:      "Page descriptors processed by category",
		}, []string{"category"}),
		batchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "seobuilder",
			Name:      "batch_duration_seconds",
			Help:      "Duration of bounded page batches",
			Buckets:   prom.DefBuckets,
		}, []string{"size"}),
		issues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "seobuilder",
			Name:      "validation_issues_total",
			Help:      "Validation issues by severity",
		}, []string{"severity"}),
		averageScore: prom.NewGauge(prom.GaugeOpts{
			Namespace: "seobuilder",
			Name:      "catalogue_average_score",
			Help:      "Average page quality score of the last validation run",
		}),
		gateOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "seobuilder",
			Name:      "gate_outcomes_total",
			Help:      "Pre-publish gate outcomes",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.buildDuration, pr.pagesProcessed,
		pr.batchDuration, pr.issues, pr.averageScore, pr.gateOutcomes)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddPagesProcessed(category string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.pagesProcessed.WithLabelValues(category).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveBatch(size int, d time.Duration) {
	if p == nil {
		return
	}
	p.batchDuration.WithLabelValues(sizeBucket(size)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddIssues(severity string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.issues.WithLabelValues(severity).Add(float64(n))
}

func (p *PrometheusRecorder) SetAverageScore(score float64) {
	if p == nil {
		return
	}
	p.averageScore.Set(score)
}

func (p *PrometheusRecorder) IncGateOutcome(passed bool) {
	if p == nil {
		return
	}
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	p.gateOutcomes.WithLabelValues(outcome).Inc()
}

// sizeBucket keeps the batch label cardinality bounded.
func sizeBucket(n int) string {
	switch {
	case n <= 10:
		return "le10"
	case n <= 50:
		return "le50"
	case n <= 200:
		return "le200"
	default:
		return "gt200"
	}
}
