package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/seobuilder/internal/artifacts"
	"git.home.luguber.info/inful/seobuilder/internal/config"
	"git.home.luguber.info/inful/seobuilder/internal/elevation"
	"git.home.luguber.info/inful/seobuilder/internal/events"
	"git.home.luguber.info/inful/seobuilder/internal/history"
	"git.home.luguber.info/inful/seobuilder/internal/logfields"
	"git.home.luguber.info/inful/seobuilder/internal/metrics"
	"git.home.luguber.info/inful/seobuilder/internal/pipeline"
	"git.home.luguber.info/inful/seobuilder/internal/retry"
)

// LogLevelEnv overrides the log level when --verbose is not given.
const LogLevelEnv = "SEOBUILDER_LOG_LEVEL"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"seobuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Generate GenerateCmd `cmd:"" help:"Run the full pipeline and write every artifact"`
	Validate ValidateCmd `cmd:"" help:"Validate the catalogue and print a quality report"`
	CI       CICmd       `cmd:"" name:"ci" help:"Validate with the pre-publish gate and exit non-zero on failure"`
	Sitemap  SitemapCmd  `cmd:"" help:"Generate sitemap files only"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild on catalogue changes and on a schedule"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := LogLevel(c.Verbose, os.Getenv(LogLevelEnv))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LogLevel resolves the log level: --verbose wins, then the env value
// (debug, info, warn, error), then info.
func LogLevel(verbose bool, env string) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if env != "" && level.UnmarshalText([]byte(strings.TrimSpace(env))) == nil {
		return level
	}
	return slog.LevelInfo
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// services are the optional collaborators enabled in config.
type services struct {
	opts    []pipeline.PipelineOption
	closers []func() error
}

func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			slog.Warn("Failed to close service", logfields.Error(err))
		}
	}
}

// newServices wires metrics, elevation enrichment, run history and the
// findings publisher from cfg. reg may be nil.
func newServices(ctx context.Context, cfg *config.Config, reg *prom.Registry) (*services, error) {
	s := &services{}
	if reg != nil {
		s.opts = append(s.opts, pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	}

	if cfg.Elevation.Enabled {
		e := cfg.Elevation
		policy := retry.ParseDurations(e.RetryBackoff, e.RetryInitial, e.RetryMax, e.MaxRetries)
		client, err := elevation.NewClient(e.URL, cfg.ElevationTimeout(), elevation.WithRetryPolicy(policy))
		if err != nil {
			return nil, err
		}
		s.opts = append(s.opts, pipeline.WithProfileSource(client))
	}

	if cfg.History.Enabled {
		if cfg.History.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o750); err != nil {
				return nil, err
			}
		}
		store, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		s.opts = append(s.opts, pipeline.WithHistory(store))
		s.closers = append(s.closers, store.Close)
	}

	if cfg.Events.Enabled {
		pub, err := events.NewNATSPublisher(ctx, events.Options{
			URL:     cfg.Events.NATSURL,
			Subject: cfg.Events.Subject,
			Stream:  cfg.Events.Stream,
		})
		if err != nil {
			s.Close()
			return nil, err
		}
		s.opts = append(s.opts, pipeline.WithPublisher(pub))
		s.closers = append(s.closers, pub.Close)
	}
	return s, nil
}

// run executes stages over plan. A writer rooted at the plan's output
// directory is attached when write is set.
func run(ctx context.Context, cfg *config.Config, plan pipeline.BuildPlan, write bool, stages ...pipeline.StageName) (*pipeline.Result, error) {
	svc, err := newServices(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	defer svc.Close()
	return runWith(ctx, svc, plan, write, stages...)
}

func runWith(ctx context.Context, svc *services, plan pipeline.BuildPlan, write bool, stages ...pipeline.StageName) (*pipeline.Result, error) {
	opts := append([]pipeline.PipelineOption(nil), svc.opts...)
	if write {
		opts = append(opts, pipeline.WithWriter(artifacts.NewOS(plan.OutputDir)))
	}
	return pipeline.NewPipeline(plan, opts...).Run(ctx, stages...)
}

// resolveOutput picks the CLI flag over the configured directory.
func resolveOutput(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Output.Directory
}

func buildPlan(cfg *config.Config, command, output string, clean, gate bool) pipeline.BuildPlan {
	return pipeline.NewBuildPlanBuilder(cfg).
		WithCommand(command).
		WithOutput(resolveOutput(output, cfg), clean || cfg.Output.Clean).
		WithGate(gate).
		ResolveSources().
		ResolveSite().
		ResolveRules().
		ResolveOutput().
		Build()
}
