package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play an interactive hot-seat game"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate bot-only games and print statistics"`
	Deck     DeckCmd          `cmd:"" help:"Print the full Sabaac deck"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sabaac"),
		kong.Description("Sabaac card game with betting rounds, shifts and bots"),
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
