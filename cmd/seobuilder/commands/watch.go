package commands

import (
	"context"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/seobuilder/internal/catalog"
	"git.home.luguber.info/inful/seobuilder/internal/config"
	"git.home.luguber.info/inful/seobuilder/internal/pipeline"
	"git.home.luguber.info/inful/seobuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory (defaults to output.directory)"`
	Interval time.Duration `help:"Periodic rebuild interval (overrides watch.interval, 0 disables)"`
	Listen   string        `help:"Health and metrics listen address (overrides metrics.listen)"`
}

func (c *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	opts := c.options(cfg)
	svc, err := newServices(ctx, cfg, opts.Registry)
	if err != nil {
		return err
	}
	defer svc.Close()

	plan := buildPlan(cfg, "watch", c.Output, false, true)
	return watch.Run(ctx, opts, func(ctx context.Context, _ string) error {
		_, err := runWith(ctx, svc, plan, true, pipeline.GenerateStages...)
		return err
	})
}

func (c *WatchCmd) options(cfg *config.Config) watch.Options {
	opts := watch.Options{
		Dirs:     append([]string(nil), cfg.Catalog.Directories...),
		Match:    catalog.IsCatalogueFile,
		Debounce: cfg.WatchDebounce(),
		Interval: cfg.WatchInterval(),
	}
	if cfg.Catalog.MarathonData != "" {
		opts.Dirs = append(opts.Dirs, filepath.Dir(cfg.Catalog.MarathonData))
	}
	if c.Interval > 0 {
		opts.Interval = c.Interval
	}
	if cfg.Metrics.Enabled || c.Listen != "" {
		opts.Listen = cfg.Metrics.Listen
		if c.Listen != "" {
			opts.Listen = c.Listen
		}
		opts.Registry = prom.NewRegistry()
	}
	return opts
}
