package commands

import (
	"path/filepath"

	"git.home.luguber.info/inful/seobuilder/internal/artifacts"
	"git.home.luguber.info/inful/seobuilder/internal/config"
	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
	"git.home.luguber.info/inful/seobuilder/internal/pipeline"
	"git.home.luguber.info/inful/seobuilder/internal/quality"
)

// CICmd implements the 'ci' command: validation plus the pre-publish gate,
// with the exit status derived from the findings.
type CICmd struct {
	Format string `short:"f" enum:"text,json" default:"text" help:"Report format (text, json)"`
	Report string `help:"Also write the JSON report to this file"`
}

func (c *CICmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	plan := buildPlan(cfg, "ci", "", false, false)
	res, err := run(ctx, cfg, plan, false, pipeline.ValidateStages...)
	if err != nil {
		return err
	}

	rep := res.CIReport()
	if err := quality.NewFormatter(c.Format, root.Verbose).Format(g.out(), rep); err != nil {
		return err
	}
	if c.Report != "" {
		w := artifacts.NewOS(filepath.Dir(c.Report))
		if err := w.WriteJSON(filepath.Base(c.Report), rep); err != nil {
			return err
		}
	}
	if rep.ExitCode != 0 {
		return seoerrors.ChecksFailed(rep.ExitCode)
	}
	return nil
}
