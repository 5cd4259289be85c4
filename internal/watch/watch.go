package watch

import (
	"context"
	"log/slog"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/seobuilder/internal/logfields"
)

// Options configures a watch session.
type Options struct {
	// Dirs are the catalogue directories to watch.
	Dirs []string
	// Match filters which file names trigger a rebuild.
	Match func(name string) bool
	// Debounce is the quiet period after the last change.
	Debounce time.Duration
	// Interval schedules periodic rebuilds; zero disables them.
	Interval time.Duration
	// Listen is the health/metrics address; empty disables the server.
	Listen string
	// Registry backs /metrics when set.
	Registry *prom.Registry
}

// Run builds once, then rebuilds on catalogue changes and on schedule until
// ctx is cancelled.
func Run(ctx context.Context, opts Options, build BuildFunc) error {
	runner := NewRunner(build)
	if err := runner.Run(ctx, "startup"); err != nil {
		slog.Warn("Initial build failed; continuing to watch", logfields.Error(err))
	}

	if len(opts.Dirs) > 0 {
		fw, err := NewFileWatcher(opts.Dirs, opts.Match, opts.Debounce, func(paths []string) {
			slog.Info("Catalogue changed", logfields.Count(len(paths)))
			runner.Trigger(ctx, "files changed")
		})
		if err != nil {
			return err
		}
		defer func() { _ = fw.Close() }()
		if err := fw.Start(ctx); err != nil {
			return err
		}
	}

	if opts.Interval > 0 {
		sched, err := NewScheduler()
		if err != nil {
			return err
		}
		if _, err := sched.SchedulePeriodicBuild(ctx, opts.Interval, runner); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Error("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	if opts.Listen != "" {
		srv := NewServer(ctx, opts.Listen, runner, opts.Registry)
		go func() {
			if err := srv.Start(); err != nil {
				slog.Error("Watch server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	<-ctx.Done()
	slog.Info("Stopping watch mode")
	waitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return runner.Wait(waitCtx)
}
