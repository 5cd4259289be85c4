package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/seobuilder/cmd/seobuilder/commands"
	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
	"git.home.luguber.info/inful/seobuilder/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("seobuilder"),
		kong.Description("Generate, interlink and validate SEO page catalogues."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Logger: slog.Default(), Stdout: os.Stdout}
	err := parser.Run(global, &cli)
	seoerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
