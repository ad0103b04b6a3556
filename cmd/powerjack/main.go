package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play an interactive game in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play headless games and report statistics"`
	Deck     DeckCmd          `cmd:"" help:"Print a shuffled draw pile"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("powerjack"),
		kong.Description("Four-seat blackjack with power cards"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
