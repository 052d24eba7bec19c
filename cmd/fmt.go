package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradelab"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the journal file in canonical form"
}
func (*fmtCmd) Usage() string {
	return `fmt

  Validates and formats the journal file. This command reads all events,
  validates them, sorts them by date, and writes them back in the canonical
  JSONL format.

Usage Examples:
# Rewrites the default journal file.
$ tla fmt

`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *dbFile != "" {
		fmt.Fprintln(os.Stderr, "Error: fmt applies to a journal file, not a database.")
		return subcommands.ExitUsageError
	}

	j, err := tradelab.LoadJournal(*journalFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load journal: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := tradelab.SaveJournal(*journalFile, j); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save journal: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "✅ Formatted %s.\n", *journalFile)
	return subcommands.ExitSuccess
}
