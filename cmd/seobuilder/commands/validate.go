package commands

import (
	"git.home.luguber.info/inful/seobuilder/internal/config"
	"git.home.luguber.info/inful/seobuilder/internal/pipeline"
	"git.home.luguber.info/inful/seobuilder/internal/quality"
)

// ValidateCmd implements the 'validate' command. Findings are reported but
// never change the exit status; use 'ci' for that.
type ValidateCmd struct {
	Format      string `short:"f" enum:"text,json" default:"text" help:"Report format (text, json)"`
	Partitioned bool   `help:"Compare intros for near-duplicates within each category only"`
}

func (c *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if c.Partitioned {
		cfg.Validation.Partitioned = true
	}
	ctx, cancel := signalContext()
	defer cancel()

	plan := buildPlan(cfg, "validate", "", false, false)
	res, err := run(ctx, cfg, plan, false, pipeline.ValidateStages...)
	if err != nil {
		return err
	}
	return quality.NewFormatter(c.Format, root.Verbose).Format(g.out(), res.CIReport())
}
