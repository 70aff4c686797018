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

type addCmd struct {
	description string
	amount      string
	category    string
	date        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction" }
func (*addCmd) Usage() string {
	return `pft add -d <description> -a <amount> -c <category> [-on <date>]

  Records a new transaction. Every field is validated first, and the date
  defaults to today.

Usage Examples:
$ pft add -d "Morning coffee" -a 3.50 -c Food
$ pft add -d "Train ticket" -a 12 -c Transport -on 2024-05-01
`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.description, "d", "", "Description of the expense.")
	f.StringVar(&p.amount, "a", "", "Amount, a positive decimal with at most two fraction digits.")
	f.StringVar(&p.category, "c", "", "Category of the expense.")
	f.StringVar(&p.date, "on", tracker.Today().String(), "Date of the expense (YYYY-MM-DD).")
}

// printFieldFailures reports every failing field, in a fixed order.
func printFieldFailures(res tracker.RecordResult) {
	for _, field := range []string{"description", "amount", "category", "date"} {
		if msg, ok := res.Fields[field]; ok {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
	}
}

func (p *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	draft := tracker.Draft{
		Description: p.description,
		Amount:      p.amount,
		Category:    p.category,
		Date:        p.date,
	}
	if res := tracker.ValidateRecord(draft); !res.Valid {
		fmt.Fprintln(os.Stderr, "Error: invalid transaction:")
		printFieldFailures(res)
		return subcommands.ExitFailure
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	tx, err := store.Add(draft)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Added %s (%s)\n", renderer.Transaction(tx), tx.ID)
	return subcommands.ExitSuccess
}
