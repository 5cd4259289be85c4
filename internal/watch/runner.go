// Package watch keeps the build artifacts fresh: it rebuilds when catalogue
// files change or on a schedule, and serves health and metrics endpoints.
package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/seobuilder/internal/logfields"
)

// BuildFunc runs one pipeline build.
type BuildFunc func(ctx context.Context, reason string) error

// Status is the runner's externally visible state.
type Status struct {
	Running    bool      `json:"running"`
	Runs       int       `json:"runs"`
	Failures   int       `json:"failures"`
	LastReason string    `json:"last_reason,omitempty"`
	LastStart  time.Time `json:"last_start,omitempty"`
	LastEnd    time.Time `json:"last_end,omitempty"`
	LastError  string    `json:"last_error,omitempty"`
}

// Runner serialises builds. A trigger that arrives while a build is running
// is coalesced into a single follow-up build.
type Runner struct {
	build BuildFunc

	mu      sync.Mutex
	status  Status
	pending string
	done    chan struct{}
}

// NewRunner creates a runner around build.
func NewRunner(build BuildFunc) *Runner {
	return &Runner{build: build}
}

// Trigger starts a build unless one is running, in which case one follow-up
// build is queued. It returns immediately.
func (r *Runner) Trigger(ctx context.Context, reason string) {
	r.mu.Lock()
	if r.status.Running {
		r.pending = reason
		r.mu.Unlock()
		slog.Debug("Build already running, queued follow-up", slog.String("reason", reason))
		return
	}
	r.status.Running = true
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.loop(ctx, reason)
}

// Run performs a build synchronously, waiting for any running build first.
func (r *Runner) Run(ctx context.Context, reason string) error {
	for {
		r.mu.Lock()
		if !r.status.Running {
			r.status.Running = true
			r.done = make(chan struct{})
			r.mu.Unlock()
			break
		}
		done := r.done
		r.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	err := r.runOnce(ctx, reason)
	r.finish(ctx)
	return err
}

func (r *Runner) loop(ctx context.Context, reason string) {
	_ = r.runOnce(ctx, reason)
	r.finish(ctx)
}

// finish either starts the queued follow-up or marks the runner idle.
func (r *Runner) finish(ctx context.Context) {
	r.mu.Lock()
	next := r.pending
	r.pending = ""
	if next != "" && ctx.Err() == nil {
		r.mu.Unlock()
		go r.loop(ctx, next)
		return
	}
	r.status.Running = false
	close(r.done)
	r.mu.Unlock()
}

func (r *Runner) runOnce(ctx context.Context, reason string) error {
	start := time.Now()
	r.mu.Lock()
	r.status.LastReason = reason
	r.status.LastStart = start
	r.mu.Unlock()

	slog.Info("Build started", slog.String("reason", reason))
	err := r.build(ctx, reason)
	end := time.Now()

	r.mu.Lock()
	r.status.Runs++
	r.status.LastEnd = end
	r.status.LastError = ""
	if err != nil {
		r.status.Failures++
		r.status.LastError = err.Error()
	}
	r.mu.Unlock()

	elapsed := logfields.DurationMS(float64(end.Sub(start).Milliseconds()))
	if err != nil {
		slog.Error("Build failed", slog.String("reason", reason), elapsed, logfields.Error(err))
	} else {
		slog.Info("Build finished", slog.String("reason", reason), elapsed)
	}
	return err
}

// Status returns a snapshot of the runner state.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Wait blocks until no build is running.
func (r *Runner) Wait(ctx context.Context) error {
	r.mu.Lock()
	if !r.status.Running {
		r.mu.Unlock()
		return nil
	}
	done := r.done
	r.mu.Unlock()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
