// Package history keeps a record of build runs and per-page quality scores
// so score regressions between runs can be reported.
package history

import (
	"context"
	"time"
)

// Run summarises one pipeline execution.
type Run struct {
	ID           string
	Command      string
	StartedAt    time.Time
	Duration     time.Duration
	Status       string
	Pages        int
	Valid        int
	Invalid      int
	AverageScore float64
	Grade        string
	GatePassed   bool
	ManifestHash string
}

// PageScore is one page's validation outcome within a run.
type PageScore struct {
	PageID   string
	Score    int
	Errors   int
	Warnings int
}

// Regression is a page whose score fell between two runs.
type Regression struct {
	PageID   string
	Previous int
	Current  int
}

// Drop is how many points the page lost.
func (r Regression) Drop() int { return r.Previous - r.Current }

// Store persists runs and page scores.
type Store interface {
	// RecordRun stores the run summary together with its page scores.
	RecordRun(ctx context.Context, run Run, scores []PageScore) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Scores returns the page scores stored for a run.
	Scores(ctx context.Context, runID string) ([]PageScore, error)

	// Regressions compares two runs and lists pages whose score dropped by
	// at least minDrop points, largest drop first.
	Regressions(ctx context.Context, previousRunID, currentRunID string, minDrop int) ([]Regression, error)

	// Close closes the store and releases resources.
	Close() error
}
