package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/tradelab/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs first: invoked by the shell, the process prints
	// candidates and exits before anything else happens.
	completion().Complete("tla")

	// API keys (market data, Gemini) can live in a .env next to the journal.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	day := predict.Something
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"l":  predict.Files("*.jsonl"),
			"db": predict.Files("*.db"),
			"v":  predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"init": {Flags: map[string]complete.Predictor{
				"c": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
				"d": day,
				"m": predict.Something,
			}},
			"open": {Flags: map[string]complete.Predictor{
				"ticker":    predict.Something,
				"direction": predict.Set{"long", "short"},
				"price":     predict.Something,
				"quantity":  predict.Something,
				"fees":      predict.Something,
				"c":         predict.Something,
				"d":         day,
				"id":        predict.Something,
				"m":         predict.Something,
			}},
			"close": {Flags: map[string]complete.Predictor{
				"id":    predict.Something,
				"price": predict.Something,
				"d":     day,
			}},
			"delete": {Flags: map[string]complete.Predictor{
				"id": predict.Something,
			}},
			"lots": {Flags: map[string]complete.Predictor{
				"ticker": predict.Something,
				"status": predict.Set{"open", "closed"},
				"from":   day,
				"to":     day,
			}},
			"positions": {Flags: map[string]complete.Predictor{
				"update": predict.Nothing,
			}},
			"report": {Flags: map[string]complete.Predictor{
				"rf":         predict.Something,
				"benchmark":  predict.Something,
				"classifier": predict.Files("*.yaml"),
				"json":       predict.Nothing,
			}},
			"insights": {Flags: map[string]complete.Predictor{
				"rf":         predict.Something,
				"benchmark":  predict.Something,
				"classifier": predict.Files("*.yaml"),
			}},
			"fmt":    {},
			"topic":  {Args: predict.Set{"readme", "journal", "lots", "positions", "report", "insights", "*"}},
			"assist": {},
		},
	}
}
