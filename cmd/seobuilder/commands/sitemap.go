package commands

import (
	"fmt"

	"git.home.luguber.info/inful/seobuilder/internal/config"
	"git.home.luguber.info/inful/seobuilder/internal/pipeline"
)

// SitemapCmd implements the 'sitemap' command.
type SitemapCmd struct {
	Output string `short:"o" help:"Output directory (defaults to output.directory)"`
}

func (c *SitemapCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	plan := buildPlan(cfg, "sitemap", c.Output, false, false)
	res, err := run(ctx, cfg, plan, true, pipeline.SitemapStages...)
	if err != nil {
		return err
	}
	out := g.out()
	for _, f := range res.Sitemaps {
		kind := "urls"
		if f.Index {
			kind = "sitemaps"
		}
		_, _ = fmt.Fprintf(out, "%s (%d %s)\n", f.Name, f.URLCount, kind)
	}
	return nil
}
