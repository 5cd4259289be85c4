// Package pipeline runs the build stages (load, enrich, index, link,
// metadata, validate, chunk, sitemap, write) in dependency order and reports
// what each produced.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/seobuilder/internal/artifacts"
	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
	"git.home.luguber.info/inful/seobuilder/internal/events"
	"git.home.luguber.info/inful/seobuilder/internal/history"
	"git.home.luguber.info/inful/seobuilder/internal/logfields"
	"git.home.luguber.info/inful/seobuilder/internal/marathon"
	"git.home.luguber.info/inful/seobuilder/internal/metrics"
	"git.home.luguber.info/inful/seobuilder/internal/page"
	"git.home.luguber.info/inful/seobuilder/internal/quality"
	"git.home.luguber.info/inful/seobuilder/internal/relevance"
	"git.home.luguber.info/inful/seobuilder/internal/scale"
	"git.home.luguber.info/inful/seobuilder/internal/sitemap"
)

// Pipeline orchestrates one build over a BuildPlan.
type Pipeline struct {
	plan      BuildPlan
	recorder  metrics.Recorder
	writer    *artifacts.Writer
	publisher events.Publisher
	history   history.Store
	profiles  marathon.ProfileSource
	now       func() time.Time
}

// PipelineOption configures pipeline behavior.
type PipelineOption func(*Pipeline)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) PipelineOption {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithWriter sets where artifacts go. Without a writer the write stage only
// logs what it would have produced.
func WithWriter(w *artifacts.Writer) PipelineOption {
	return func(p *Pipeline) {
		p.writer = w
	}
}

// WithPublisher publishes run findings after every run.
func WithPublisher(pub events.Publisher) PipelineOption {
	return func(p *Pipeline) {
		if pub != nil {
			p.publisher = pub
		}
	}
}

// WithHistory records each validated run and its page scores.
func WithHistory(s history.Store) PipelineOption {
	return func(p *Pipeline) {
		p.history = s
	}
}

// WithProfileSource enables elevation enrichment of race and course pages.
func WithProfileSource(src marathon.ProfileSource) PipelineOption {
	return func(p *Pipeline) {
		p.profiles = src
	}
}

// WithClock replaces time.Now, for reproducible manifests and sitemaps.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPipeline creates a pipeline for plan.
func NewPipeline(plan BuildPlan, options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		plan:      plan,
		recorder:  metrics.NoopRecorder{},
		publisher: events.NoopPublisher{},
		now:       time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// StageResult is the outcome of one executed stage.
type StageResult struct {
	Name     StageName     `json:"name"`
	Duration time.Duration `json:"duration"`
	Result   string        `json:"result"`
	Error    string        `json:"error,omitempty"`
}

// Result contains everything a run produced. Fields belonging to stages
// that did not run stay nil.
type Result struct {
	RunID    string
	Plan     *ExecutionPlan
	Stages   []StageResult
	Pages    []page.Descriptor
	Hubs     *page.HubSet
	Links    map[string][]page.InternalLink
	Metadata map[string]PageMetadata
	Batch    *quality.BatchResult
	Gate     *quality.GateResult
	Report   *quality.QualityReport
	Chunks   scale.Chunks
	Sitemaps []sitemap.File
	Manifest *scale.Manifest
	Written  []string
	Duration time.Duration
	Canceled bool
}

// IsSuccess returns true if every executed stage completed without error.
func (r *Result) IsSuccess() bool {
	if r == nil || r.Canceled {
		return false
	}
	for _, s := range r.Stages {
		if s.Error != "" {
			return false
		}
	}
	return true
}

// CIReport bundles the validation outcome for formatters. Nil when the
// validate stage did not run.
func (r *Result) CIReport() *quality.CIReport {
	if r == nil || r.Batch == nil {
		return nil
	}
	return quality.NewCIReport(r.Batch, r.Gate)
}

type runState struct {
	result *Result
	start  time.Time

	hubConfigs []page.HubConfig
	pages      []page.Descriptor
	catalogue  *page.Catalogue
	hubs       *page.HubSet
	engine     *relevance.Engine
	warning    bool
}

// Run executes the requested stages plus everything they require.
func (p *Pipeline) Run(ctx context.Context, stages ...StageName) (*Result, error) {
	plan, err := BuildExecutionPlan(stages)
	if err != nil {
		return nil, seoerrors.InternalError("building execution plan", err)
	}

	runID := uuid.NewString()
	log := slog.With(logfields.RunID(runID))
	log.Info("Executing pipeline",
		slog.String("command", p.plan.Command),
		slog.Int("stages", len(plan.Order)),
		slog.Any("order", plan.Order))

	st := &runState{
		start:  p.now(),
		result: &Result{RunID: runID, Plan: plan},
	}
	started := time.Now()

	var runErr error
	for _, name := range plan.Order {
		if err := ctx.Err(); err != nil {
			st.result.Stages = append(st.result.Stages, StageResult{Name: name, Result: string(metrics.ResultFatal), Error: err.Error()})
			st.result.Canceled = true
			runErr = err
			break
		}
		if err := p.runStage(ctx, st, name, log); err != nil {
			runErr = err
			break
		}
	}

	st.result.Duration = time.Since(started)
	p.recorder.ObserveBuildDuration(st.result.Duration)
	p.finish(ctx, st, runErr, log)

	if runErr != nil {
		return st.result, runErr
	}
	log.Info("Pipeline completed", logfields.DurationMS(float64(st.result.Duration.Milliseconds())))
	return st.result, nil
}

func (p *Pipeline) runStage(ctx context.Context, st *runState, name StageName, log *slog.Logger) error {
	def := registry[name]
	st.warning = false
	t0 := time.Now()
	err := def.run(p, ctx, st)
	d := time.Since(t0)

	label := metrics.ResultSuccess
	switch {
	case err != nil:
		label = metrics.ResultFatal
	case st.warning:
		label = metrics.ResultWarning
	}
	p.recorder.ObserveStageDuration(string(name), d)
	p.recorder.IncStageResult(string(name), label)

	sr := StageResult{Name: name, Duration: d, Result: string(label)}
	if err != nil {
		sr.Error = err.Error()
	}
	st.result.Stages = append(st.result.Stages, sr)

	if err != nil {
		log.Error("Stage failed", logfields.Stage(string(name)), logfields.Error(err))
		if _, ok := seoerrors.As(err); !ok && !errors.Is(err, context.Canceled) {
			err = seoerrors.BuildFailed(string(name), err)
		}
		return err
	}
	log.Debug("Stage completed", logfields.Stage(string(name)), logfields.DurationMS(float64(d.Microseconds())/1000))
	return nil
}
