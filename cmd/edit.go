package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
)

type editCmd struct {
	description string
	amount      string
	category    string
	date        string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit an existing transaction" }
func (*editCmd) Usage() string {
	return `pft edit <id> [-d <description>] [-a <amount>] [-c <category>] [-on <date>]

  Edits the identified transaction. Only the given fields change; the others
  keep their current value. The edited record is re-validated as a whole.

Usage Examples:
$ pft edit 4f2d… -a 4.00
`
}

func (p *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.description, "d", "", "New description.")
	f.StringVar(&p.amount, "a", "", "New amount.")
	f.StringVar(&p.category, "c", "", "New category.")
	f.StringVar(&p.date, "on", "", "New date (YYYY-MM-DD).")
}

func (p *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: edit takes exactly one transaction id")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	var current tracker.Transaction
	found := false
	for _, tx := range store.Transactions() {
		if tx.ID == id {
			current, found = tx, true
			break
		}
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Error: no transaction with id %q\n", id)
		return subcommands.ExitFailure
	}

	// unset flags keep the current value.
	draft := tracker.Draft{
		Description: current.Description,
		Amount:      current.Amount.String(),
		Category:    current.Category,
		Date:        current.Date.String(),
	}
	if p.description != "" {
		draft.Description = p.description
	}
	if p.amount != "" {
		draft.Amount = p.amount
	}
	if p.category != "" {
		draft.Category = p.category
	}
	if p.date != "" {
		draft.Date = p.date
	}

	if res := tracker.ValidateRecord(draft); !res.Valid {
		fmt.Fprintln(os.Stderr, "Error: invalid transaction:")
		printFieldFailures(res)
		return subcommands.ExitFailure
	}

	if _, err := store.Update(id, draft); err != nil {
		return fail(err)
	}
	for _, tx := range store.Transactions() {
		if tx.ID == id {
			fmt.Printf("Updated %s\n", renderer.Transaction(tx))
		}
	}
	return subcommands.ExitSuccess
}
