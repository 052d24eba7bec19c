package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/tradelab"
	"github.com/etnz/tradelab/quotes"
	"github.com/etnz/tradelab/renderer"
	"github.com/google/subcommands"
)

// Fetched prices stay fresh for this long; within one command run the cache
// only dedupes tickers, but the pause-and-batch pacing still applies.
const priceTTL = 15 * time.Minute

// positionsCmd holds the flags for the 'positions' subcommand.
type positionsCmd struct {
	update bool
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "aggregate open lots per ticker" }
func (*positionsCmd) Usage() string {
	return `positions [-update]

  Aggregates open lots into one position per ticker: total quantity, total
  cost, average entry price. With -update, fetches current prices and adds
  market value and unrealized P&L.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "update", false, "Fetch current prices and show unrealized P&L")
}

func (c *positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	lots, err := st.List(ctx, tradelab.Filter{Status: tradelab.StatusOpen})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	positions, err := tradelab.AggregatePositions(lots)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var views []tradelab.PositionView
	if c.update {
		tickers := make([]string, 0, len(positions))
		for _, p := range positions {
			tickers = append(tickers, p.Ticker)
		}
		provider := tradelab.NewCachedProvider(quotes.NewClient(logger()), priceTTL)
		prices, err := tradelab.FetchPrices(ctx, provider, tickers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not fetch every price: %v\n", err)
		}
		var missing []string
		views, missing = markPositions(positions, prices)
		if len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "Warning: %s marked at average entry price.\n", strings.Join(missing, ", "))
		}
	} else {
		for _, p := range positions {
			views = append(views, tradelab.PositionView{Position: p})
		}
	}

	printMarkdown(renderer.PositionsMarkdown(views))
	return subcommands.ExitSuccess
}

// markPositions marks each position against its fetched price. Tickers
// missing from the price map fall back to their average entry price, which
// shows a zero unrealized P&L rather than no position at all.
func markPositions(positions []tradelab.Position, prices map[string]float64) (views []tradelab.PositionView, missing []string) {
	for _, p := range positions {
		price, ok := prices[p.Ticker]
		if !ok {
			missing = append(missing, p.Ticker)
			views = append(views, p.WithPrice(p.AverageEntryPrice))
			continue
		}
		views = append(views, p.WithPrice(tradelab.M(price, p.AverageEntryPrice.Currency())))
	}
	return views, missing
}
