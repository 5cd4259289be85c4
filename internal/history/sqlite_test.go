package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordRunAndRecent(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	first := Run{ID: "run-1", Command: "ci", StartedAt: base, Duration: 1500 * time.Millisecond,
		Status: "succeeded", Pages: 2, Valid: 2, AverageScore: 92.5, Grade: "A", GatePassed: true, ManifestHash: "abc"}
	second := Run{ID: "run-2", Command: "generate", StartedAt: base.Add(time.Hour), Duration: time.Second,
		Status: "failed", Pages: 2, Valid: 1, Invalid: 1, AverageScore: 70, Grade: "C"}

	require.NoError(t, store.RecordRun(ctx, first, []PageScore{{PageID: "a", Score: 95}, {PageID: "b", Score: 90}}))
	require.NoError(t, store.RecordRun(ctx, second, []PageScore{{PageID: "a", Score: 60, Errors: 2}, {PageID: "b", Score: 80, Warnings: 1}}))

	runs, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.False(t, runs[0].GatePassed)
	assert.Empty(t, runs[0].ManifestHash)
	assert.Equal(t, first.StartedAt, runs[1].StartedAt)
	assert.Equal(t, first.Duration, runs[1].Duration)
	assert.True(t, runs[1].GatePassed)
	assert.Equal(t, "abc", runs[1].ManifestHash)

	scores, err := store.Scores(ctx, "run-2")
	require.NoError(t, err)
	assert.Equal(t, []PageScore{{PageID: "a", Score: 60, Errors: 2}, {PageID: "b", Score: 80, Warnings: 1}}, scores)
}

func TestRegressions(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	now := time.Now()

	require.NoError(t, store.RecordRun(ctx, Run{ID: "p", StartedAt: now, Status: "succeeded"},
		[]PageScore{{PageID: "a", Score: 100}, {PageID: "b", Score: 90}, {PageID: "c", Score: 80}, {PageID: "gone", Score: 100}}))
	require.NoError(t, store.RecordRun(ctx, Run{ID: "c", StartedAt: now.Add(time.Minute), Status: "succeeded"},
		[]PageScore{{PageID: "a", Score: 85}, {PageID: "b", Score: 88}, {PageID: "c", Score: 95}, {PageID: "new", Score: 10}}))

	regs, err := store.Regressions(ctx, "p", "c", 5)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, Regression{PageID: "a", Previous: 100, Current: 85}, regs[0])
	assert.Equal(t, 15, regs[0].Drop())

	regs, err = store.Regressions(ctx, "p", "c", 0)
	require.NoError(t, err)
	assert.Len(t, regs, 2)
	assert.Equal(t, "a", regs[0].PageID)
	assert.Equal(t, "b", regs[1].PageID)
}

func TestRecordRun_DuplicateIDRollsBack(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	run := Run{ID: "dup", StartedAt: time.Now(), Status: "succeeded"}

	require.NoError(t, store.RecordRun(ctx, run, nil))
	err := store.RecordRun(ctx, run, []PageScore{{PageID: "x", Score: 1}})
	require.Error(t, err)

	scores, err := store.Scores(ctx, "dup")
	require.NoError(t, err)
	assert.Empty(t, scores)
}
