package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
	"git.home.luguber.info/inful/seobuilder/internal/quality"
)

type published struct {
	subject string
	data    []byte
}

type fakeStream struct {
	msgs []published
	err  error
}

func (f *fakeStream) Publish(_ context.Context, subject string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.msgs = append(f.msgs, published{subject: subject, data: data})
	return &jetstream.PubAck{Stream: "SEO", Sequence: uint64(len(f.msgs))}, nil
}

func newTestPublisher(js streamPublisher) *NATSPublisher {
	fixed := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	return &NATSPublisher{js: js, subject: "seo.findings", now: func() time.Time { return fixed }}
}

func TestPublishRun(t *testing.T) {
	fs := &fakeStream{}
	p := newTestPublisher(fs)

	require.NoError(t, p.PublishRun(t.Context(), RunCompleted{RunID: "r1", Pages: 3, Grade: "B"}))
	require.Len(t, fs.msgs, 1)
	assert.Equal(t, "seo.findings.run_completed", fs.msgs[0].subject)

	var got RunCompleted
	require.NoError(t, json.Unmarshal(fs.msgs[0].data, &got))
	assert.Equal(t, "r1", got.RunID)
	assert.Equal(t, 3, got.Pages)
	assert.Equal(t, 2026, got.Timestamp.Year())
}

func TestPublishBrokenLinks(t *testing.T) {
	fs := &fakeStream{}
	p := newTestPublisher(fs)

	links := []quality.BrokenLink{
		{SourceID: "race-guide:boston", Field: "related", Target: "elevation-tool:boston"},
		{SourceID: "blog-post:taper", Field: "intro", Target: "/calculator/missing"},
	}
	require.NoError(t, p.PublishBrokenLinks(t.Context(), "r2", links))
	require.Len(t, fs.msgs, 2)
	for _, m := range fs.msgs {
		assert.Equal(t, "seo.findings.broken_link", m.subject)
	}

	var second BrokenLink
	require.NoError(t, json.Unmarshal(fs.msgs[1].data, &second))
	assert.Equal(t, BrokenLink{RunID: "r2", SourceID: "blog-post:taper", Field: "intro", Target: "/calculator/missing",
		Timestamp: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}, second)
}

func TestPublishFailureIsEventsError(t *testing.T) {
	p := newTestPublisher(&fakeStream{err: errors.New("no responders")})
	err := p.PublishGateFailed(t.Context(), GateFailed{RunID: "r3", Blocking: []string{"1 duplicate output path(s)"}})
	require.Error(t, err)
	assert.True(t, seoerrors.IsCategory(err, seoerrors.CategoryEvents))
}

func TestNewNATSPublisher_RequiresSubjectAndStream(t *testing.T) {
	_, err := NewNATSPublisher(context.Background(), Options{URL: "nats://127.0.0.1:4222"})
	require.Error(t, err)
	assert.True(t, seoerrors.IsCategory(err, seoerrors.CategoryConfig))
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishRun(t.Context(), RunCompleted{}))
	assert.NoError(t, p.PublishBrokenLinks(t.Context(), "r", nil))
	assert.NoError(t, p.PublishGateFailed(t.Context(), GateFailed{}))
	assert.NoError(t, p.Close())
}
