package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/holdemref/internal/config"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version   kong.VersionFlag `short:"v" help:"Show version"`
	NoColor   bool             `name:"no-color" env:"NO_COLOR" help:"Disable coloured output"`
	GenLookup GenLookupCmd     `cmd:"gen-lookup" help:"Build the hand strength lookup table and write it as JSON"`
	Play      PlayCmd          `cmd:"" help:"Play a session of bot hands from an HCL config"`
	Equity    EquityCmd        `cmd:"" help:"Estimate the equity of a hand by Monte Carlo simulation"`
	Eval      EvalCmd          `cmd:"" help:"Score the best five-card hand from 5-7 cards"`
	History   HistoryCmd       `cmd:"" help:"Print recorded hands from a hand log or Redis"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdemref"),
		kong.Description("Texas Hold'em rules and settlement engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":   version,
			"redis_key": config.DefaultRedisKey,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
