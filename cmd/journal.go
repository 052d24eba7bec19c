package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/tradelab"
	"github.com/google/subcommands"
)

// parseDay parses a day in YYYY-MM-DD form. Empty means today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	return time.Parse("2006-01-02", s)
}

// --- Init Command ---

type initCmd struct {
	currency string
	date     string
	memo     string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "declare the journal currency" }
func (*initCmd) Usage() string {
	return `init [-c <currency>] [-d <date>] [-m <memo>]

  Declares the currency every amount in the journal is expressed in.
  A journal can only be initialized once; without it, it runs in USD.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "USD", "Journal currency (ISO 4217 code, e.g. USD, EUR)")
	f.StringVar(&c.date, "d", "", "Event date (YYYY-MM-DD), today by default")
	f.StringVar(&c.memo, "m", "", "An optional note")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *dbFile != "" {
		fmt.Fprintln(os.Stderr, "Error: init applies to a journal file, not a database.")
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	j, err := tradelab.LoadJournal(*journalFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := j.Append(tradelab.NewInit(day, c.memo, c.currency)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := tradelab.SaveJournal(*journalFile, j); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Journal %s runs in %s.\n", *journalFile, j.Currency())
	return subcommands.ExitSuccess
}

// --- Open Command ---

type openCmd struct {
	ticker    string
	direction string
	price     string
	quantity  string
	fees      string
	currency  string
	date      string
	id        string
	memo      string
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "record the entry into a lot" }
func (*openCmd) Usage() string {
	return `open -ticker <ticker> -price <price> -quantity <quantity> [-fees <fees>] [-direction long|short] [-d <date>] [-id <id>] [-m <memo>]

  Records the purchase (or short sale) of a parcel of an instrument.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Instrument ticker")
	f.StringVar(&c.direction, "direction", "long", "Lot direction (long, short)")
	f.StringVar(&c.price, "price", "", "Entry price per unit")
	f.StringVar(&c.quantity, "quantity", "", "Number of units")
	f.StringVar(&c.fees, "fees", "0", "Fees paid, entry and exit combined")
	f.StringVar(&c.currency, "c", "", "Currency of the amounts, the store's by default")
	f.StringVar(&c.date, "d", "", "Entry date (YYYY-MM-DD), today by default")
	f.StringVar(&c.id, "id", "", "Lot id, generated when omitted")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *openCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.price == "" || c.quantity == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	direction, err := tradelab.ParseDirection(c.direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	cur := st.currency
	if c.currency != "" {
		cur = c.currency
	}
	price, err := tradelab.ParseMoney(c.price, cur)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := tradelab.ParseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}
	fees, err := tradelab.ParseMoney(c.fees, cur)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing fees: %v\n", err)
		return subcommands.ExitUsageError
	}

	lot, err := st.Create(ctx, tradelab.Lot{
		ID:         c.id,
		Ticker:     c.ticker,
		Direction:  direction,
		EntryDate:  day,
		EntryPrice: price,
		Quantity:   quantity,
		Fees:       fees,
		Memo:       c.memo,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := st.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Opened lot %s: %s %s %s at %s.\n", lot.ID, lot.Direction, lot.Quantity, lot.Ticker, lot.EntryPrice)
	return subcommands.ExitSuccess
}

// --- Close Command ---

type closeCmd struct {
	id    string
	price string
	date  string
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "record the exit of an open lot" }
func (*closeCmd) Usage() string {
	return `close -id <id> -price <price> [-d <date>]

  Records the exit of an open lot and prints the realized profit and loss.
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the lot to close")
	f.StringVar(&c.price, "price", "", "Exit price per unit")
	f.StringVar(&c.date, "d", "", "Exit date (YYYY-MM-DD), today by default")
}

func (c *closeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	// The bare amount adopts the lot currency in the store.
	price, err := tradelab.ParseMoney(c.price, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}

	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	lot, err := st.CloseLot(ctx, c.id, day, price)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := st.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	view, err := tradelab.NewLotView(lot, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Closed lot %s: P&L %s (%s) over %d days.\n",
		lot.ID, view.ProfitLoss.SignedString(), view.ProfitLossPct.SignedString(), view.HoldingDays)
	return subcommands.ExitSuccess
}

// --- Delete Command ---

type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a lot from the store" }
func (*deleteCmd) Usage() string {
	return `delete -id <id>

  Removes a lot, open or closed. In a journal this removes the lot's open
  and close events.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the lot to delete")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	removed, err := st.Delete(ctx, c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !removed {
		fmt.Fprintf(os.Stderr, "no lot with id %q\n", c.id)
		return subcommands.ExitFailure
	}
	if err := st.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted lot %s.\n", c.id)
	return subcommands.ExitSuccess
}
