package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/commitmail/cmd/commitmail/commands"
	"git.home.luguber.info/inful/commitmail/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("commitmail"),
		kong.Description("Render commit events into HTML notification documents."),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{})
	ctx.FatalIfErrorf(err)
}
