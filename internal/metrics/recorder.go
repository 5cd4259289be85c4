package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// Recorder defines observability hooks for build stages, page processing and
// validation findings.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	AddPagesProcessed(category string, n int)
	ObserveBatch(size int, d time.Duration)
	AddIssues(severity string, n int)
	SetAverageScore(score float64)
	IncGateOutcome(passed bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) AddPagesProcessed(string, int)              {}
func (NoopRecorder) ObserveBatch(int, time.Duration)            {}
func (NoopRecorder) AddIssues(string, int)                      {}
func (NoopRecorder) SetAverageScore(float64)                    {}
func (NoopRecorder) IncGateOutcome(bool)                        {}
