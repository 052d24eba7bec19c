// Package cmd implements the CLI application to manage a trade journal.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tradelab"
	"github.com/etnz/tradelab/sqlstore"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists every subcommand. A main package registers them on a
// commander and calls Execute on the user-selected one.
var Commands = []subcommands.Command{
	&initCmd{},
	&openCmd{},
	&closeCmd{},
	&deleteCmd{},
	&lotsCmd{},
	&positionsCmd{},
	&reportCmd{},
	&insightsCmd{},
	&fmtCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var journalFile = flag.String("l", "trades.jsonl", "Path to the journal file (JSONL format)")
var dbFile = flag.String("db", "", "Path to a SQLite lot database, used instead of the journal file")
var verbose = flag.Bool("v", false, "Enable debug logging")

func logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// store bundles a TradeStore with its lifecycle. Journal mutations persist
// on Save (the whole file is rewritten in canonical form); the database
// commits every call, its Save is a no-op.
type store struct {
	tradelab.TradeStore
	// currency new amounts are parsed in when a command has no explicit one
	currency string
	save     func() error
	release  func() error
}

func (s *store) Save() error {
	if s.save == nil {
		return nil
	}
	return s.save()
}

func (s *store) Close() error {
	if s.release == nil {
		return nil
	}
	return s.release()
}

// openStore opens the lot store selected by the global flags: the SQLite
// database when -db is set, the journal file otherwise.
func openStore() (*store, error) {
	if *dbFile != "" {
		s, err := sqlstore.Open(*dbFile, logger())
		if err != nil {
			return nil, err
		}
		return &store{TradeStore: s, currency: "USD", release: s.Close}, nil
	}
	j, err := tradelab.LoadJournal(*journalFile)
	if err != nil {
		return nil, err
	}
	return &store{
		TradeStore: j,
		currency:   j.Currency(),
		save:       func() error { return tradelab.SaveJournal(*journalFile, j) },
	}, nil
}

// printMarkdown renders markdown for the terminal. When no renderer can be
// built (dumb terminal, no TTY) the raw markdown is printed as is, it stays
// readable.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
