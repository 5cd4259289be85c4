package commands

import (
	"fmt"

	"git.home.luguber.info/inful/seobuilder/internal/config"
	"git.home.luguber.info/inful/seobuilder/internal/pipeline"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Output string `short:"o" help:"Output directory for artifacts (defaults to output.directory)"`
	Clean  bool   `help:"Remove previous artifacts before writing"`
	NoGate bool   `name:"no-gate" help:"Write artifacts even when the pre-publish gate fails"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	plan := buildPlan(cfg, "generate", c.Output, c.Clean, !c.NoGate)
	res, err := run(ctx, cfg, plan, true, pipeline.GenerateStages...)
	if err != nil {
		return err
	}

	out := g.out()
	_, _ = fmt.Fprintf(out, "Generated %d pages into %s\n", len(res.Pages), plan.OutputDir)
	if res.Report != nil {
		_, _ = fmt.Fprintf(out, "Quality grade %s (average score %.1f)\n", res.Report.Grade, res.Report.AverageScore)
	}
	_, _ = fmt.Fprintf(out, "Wrote %d files\n", len(res.Written))
	return nil
}
