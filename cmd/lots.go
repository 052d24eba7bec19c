package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/tradelab"
	"github.com/etnz/tradelab/renderer"
	"github.com/google/subcommands"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct {
	ticker string
	status string
	from   string
	to     string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list lots with their derived figures" }
func (*lotsCmd) Usage() string {
	return `lots [-ticker <ticker>] [-status open|closed] [-from <date>] [-to <date>]

  Lists lots with entry, exit, P&L, percentage return and holding days.
  Date bounds apply to the entry date and are inclusive.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Only lots of this ticker")
	f.StringVar(&c.status, "status", "", "Only open or only closed lots")
	f.StringVar(&c.from, "from", "", "Only lots entered on or after this date (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "Only lots entered on or before this date (YYYY-MM-DD)")
}

func parseStatus(s string) (tradelab.Status, error) {
	switch s {
	case "":
		return tradelab.StatusAny, nil
	case "open":
		return tradelab.StatusOpen, nil
	case "closed":
		return tradelab.StatusClosed, nil
	}
	return tradelab.StatusAny, fmt.Errorf("unknown status %q (must be open or closed)", s)
}

func (c *lotsCmd) filter() (tradelab.Filter, error) {
	var f tradelab.Filter
	var err error
	f.Ticker = c.ticker
	if f.Status, err = parseStatus(c.status); err != nil {
		return f, err
	}
	if c.from != "" {
		if f.From, err = parseDay(c.from); err != nil {
			return f, fmt.Errorf("parsing -from: %w", err)
		}
	}
	if c.to != "" {
		if f.To, err = parseDay(c.to); err != nil {
			return f, fmt.Errorf("parsing -to: %w", err)
		}
	}
	return f, nil
}

func (c *lotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	lots, err := st.List(ctx, filter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	now := time.Now()
	views := make([]tradelab.LotView, 0, len(lots))
	for _, l := range lots {
		v, err := tradelab.NewLotView(l, now)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		views = append(views, v)
	}

	printMarkdown(renderer.LotsMarkdown(views))
	return subcommands.ExitSuccess
}
