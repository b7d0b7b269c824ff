package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/osushizm/memo/cmd/memosite/commands"
	"github.com/osushizm/memo/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("memosite"),
		kong.Description("Render a tree of Markdown notes into a static HTML site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli)
	ctx.FatalIfErrorf(err)
}
