package watch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/seobuilder/internal/metrics"
)

func TestRunner_CoalescesTriggers(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	r := NewRunner(func(ctx context.Context, reason string) error {
		if calls.Add(1) == 1 {
			<-release
		}
		return nil
	})

	ctx := t.Context()
	r.Trigger(ctx, "first")
	require.Eventually(t, func() bool { return r.Status().Running }, time.Second, 5*time.Millisecond)

	// Three triggers while busy collapse into one follow-up.
	r.Trigger(ctx, "a")
	r.Trigger(ctx, "b")
	r.Trigger(ctx, "c")
	close(release)

	require.NoError(t, r.Wait(ctx))
	assert.Equal(t, int32(2), calls.Load())
	st := r.Status()
	assert.Equal(t, 2, st.Runs)
	assert.Equal(t, "c", st.LastReason)
	assert.False(t, st.Running)
}

func TestRunner_RunRecordsFailure(t *testing.T) {
	r := NewRunner(func(context.Context, string) error { return errors.New("gate failed") })
	err := r.Run(t.Context(), "manual")
	require.Error(t, err)

	st := r.Status()
	assert.Equal(t, 1, st.Failures)
	assert.Equal(t, "gate failed", st.LastError)
}

func TestServer_Endpoints(t *testing.T) {
	var calls atomic.Int32
	r := NewRunner(func(context.Context, string) error {
		calls.Add(1)
		return nil
	})
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.AddPagesProcessed("race-guide", 3)

	srv := httptest.NewServer(NewServer(t.Context(), "", r, reg).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/rebuild", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, r.Wait(t.Context()))

	resp, err = http.Get(srv.URL + "/status")
	require.NoError(t, err)
	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	_ = resp.Body.Close()
	assert.Equal(t, 1, st.Runs)
	assert.Equal(t, "manual", st.LastReason)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_HealthDegradedAfterFailure(t *testing.T) {
	r := NewRunner(func(context.Context, string) error { return errors.New("boom") })
	_ = r.Run(t.Context(), "startup")

	rec := httptest.NewRecorder()
	NewServer(t.Context(), "", r, nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom")
}

func TestFileWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	var (
		mu      sync.Mutex
		batches [][]string
	)
	fw, err := NewFileWatcher([]string{dir}, func(name string) bool {
		return strings.HasSuffix(name, ".yaml")
	}, 50*time.Millisecond, func(paths []string) {
		mu.Lock()
		batches = append(batches, paths)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer func() { _ = fw.Close() }()
	require.NoError(t, fw.Start(t.Context()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("pages: []"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("pages: []"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) == 1 && len(batches[0]) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_TriggersRunner(t *testing.T) {
	var calls atomic.Int32
	r := NewRunner(func(context.Context, string) error {
		calls.Add(1)
		return nil
	})
	s, err := NewScheduler()
	require.NoError(t, err)
	_, err = s.SchedulePeriodicBuild(t.Context(), 20*time.Millisecond, r)
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Stop() }()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "scheduled", r.Status().LastReason)
}

func TestRun_StopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{Dirs: []string{t.TempDir()}, Debounce: 10 * time.Millisecond}, func(context.Context, string) error {
			calls.Add(1)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
