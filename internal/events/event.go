// Package events publishes build findings to NATS JetStream so other
// services (dashboards, chat notifiers) can react to quality regressions.
package events

import (
	"context"
	"time"

	"git.home.luguber.info/inful/seobuilder/internal/quality"
)

// Kind names the event and is the last subject token.
type Kind string

const (
	KindRunCompleted Kind = "run_completed"
	KindBrokenLink   Kind = "broken_link"
	KindGateFailed   Kind = "gate_failed"
)

// RunCompleted summarises a finished validation run.
type RunCompleted struct {
	RunID        string    `json:"run_id"`
	Command      string    `json:"command"`
	Pages        int       `json:"pages"`
	Valid        int       `json:"valid"`
	Invalid      int       `json:"invalid"`
	AverageScore float64   `json:"average_score"`
	Grade        string    `json:"grade"`
	GatePassed   bool      `json:"gate_passed"`
	BrokenLinks  int       `json:"broken_links"`
	Duplicates   int       `json:"duplicates"`
	Timestamp    time.Time `json:"timestamp"`
}

// BrokenLink reports one unresolved internal reference.
type BrokenLink struct {
	RunID     string    `json:"run_id"`
	SourceID  string    `json:"source_id"`
	Field     string    `json:"field"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
}

// GateFailed carries the blocking reasons of a failed pre-publish gate.
type GateFailed struct {
	RunID     string    `json:"run_id"`
	Blocking  []string  `json:"blocking"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits run findings.
type Publisher interface {
	PublishRun(ctx context.Context, ev RunCompleted) error
	PublishBrokenLinks(ctx context.Context, runID string, links []quality.BrokenLink) error
	PublishGateFailed(ctx context.Context, ev GateFailed) error
	Close() error
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishRun(context.Context, RunCompleted) error { return nil }

func (NoopPublisher) PublishBrokenLinks(context.Context, string, []quality.BrokenLink) error {
	return nil
}

func (NoopPublisher) PublishGateFailed(context.Context, GateFailed) error { return nil }

func (NoopPublisher) Close() error { return nil }
