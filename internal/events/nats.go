package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
	"git.home.luguber.info/inful/seobuilder/internal/logfields"
	"git.home.luguber.info/inful/seobuilder/internal/quality"
)

const publishTimeout = 5 * time.Second

// streamPublisher is the slice of jetstream.JetStream the publisher needs.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// NATSPublisher publishes events to a JetStream stream under
// "<subject>.<kind>".
type NATSPublisher struct {
	conn    *nats.Conn
	js      streamPublisher
	subject string
	now     func() time.Time
}

// Options configures a NATS connection.
type Options struct {
	URL     string
	Subject string
	Stream  string
}

// NewNATSPublisher connects to NATS and makes sure the stream exists.
func NewNATSPublisher(ctx context.Context, opts Options) (*NATSPublisher, error) {
	if opts.Subject == "" || opts.Stream == "" {
		return nil, seoerrors.ConfigRequired("events.subject and events.stream")
	}

	conn, err := nats.Connect(opts.URL, nats.Name("seobuilder"))
	if err != nil {
		return nil, seoerrors.Wrap(err, seoerrors.CategoryEvents, seoerrors.SeverityError, "failed to connect to NATS").
			WithContext("url", opts.URL)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        opts.Stream,
		Description: "seobuilder run findings",
		Subjects:    []string{opts.Subject + ".>"},
		MaxAge:      30 * 24 * time.Hour,
	})
	if err != nil {
		conn.Close()
		return nil, seoerrors.Wrap(err, seoerrors.CategoryEvents, seoerrors.SeverityError, "failed to create stream").
			WithContext("stream", opts.Stream)
	}

	slog.Info("NATS publisher initialized",
		logfields.URL(opts.URL),
		slog.String("subject", opts.Subject),
		slog.String("stream", opts.Stream))

	return &NATSPublisher{conn: conn, js: js, subject: opts.Subject, now: time.Now}, nil
}

// Subject returns the full subject for kind.
func (p *NATSPublisher) Subject(kind Kind) string {
	return p.subject + "." + string(kind)
}

func (p *NATSPublisher) publish(ctx context.Context, kind Kind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if _, err := p.js.Publish(ctx, p.Subject(kind), data); err != nil {
		return seoerrors.Wrap(err, seoerrors.CategoryEvents, seoerrors.SeverityWarning, "failed to publish event").
			WithContext("subject", p.Subject(kind))
	}
	return nil
}

// PublishRun publishes a run summary.
func (p *NATSPublisher) PublishRun(ctx context.Context, ev RunCompleted) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = p.now()
	}
	if err := p.publish(ctx, KindRunCompleted, ev); err != nil {
		return err
	}
	slog.Debug("Published run event", logfields.RunID(ev.RunID))
	return nil
}

// PublishBrokenLinks publishes one event per broken link, stopping at the
// first failure.
func (p *NATSPublisher) PublishBrokenLinks(ctx context.Context, runID string, links []quality.BrokenLink) error {
	ts := p.now()
	for _, l := range links {
		ev := BrokenLink{RunID: runID, SourceID: l.SourceID, Field: l.Field, Target: l.Target, Timestamp: ts}
		if err := p.publish(ctx, KindBrokenLink, ev); err != nil {
			return err
		}
	}
	if len(links) > 0 {
		slog.Debug("Published broken link events", logfields.RunID(runID), logfields.Count(len(links)))
	}
	return nil
}

// PublishGateFailed publishes the blocking reasons of a failed gate.
func (p *NATSPublisher) PublishGateFailed(ctx context.Context, ev GateFailed) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = p.now()
	}
	return p.publish(ctx, KindGateFailed, ev)
}

// Close drains and closes the NATS connection.
func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		return p.conn.Drain()
	}
	return nil
}
