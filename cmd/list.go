package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
)

type listCmd struct {
	by  string
	asc bool
	ids bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the recorded transactions" }
func (*listCmd) Usage() string {
	return `pft list [-by <field>] [-asc] [-ids]

  Lists the recorded transactions. The default order is by date, newest
  first. Ties keep the order the records were entered in.

Usage Examples:
$ pft list
$ pft list -by amount
$ pft list -by description -asc
`
}

func (p *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.by, "by", "date", "Sort field: date, amount, description or category.")
	f.BoolVar(&p.asc, "asc", false, "Sort ascending instead of descending.")
	f.BoolVar(&p.ids, "ids", false, "Print one id per line instead of the report, for scripting.")
}

func (p *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	field, err := tracker.ParseSortField(p.by)
	if err != nil {
		return fail(err)
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	store.SetSort(tracker.SortOrder{Field: field, Ascending: p.asc})
	view := store.SortedView()

	if p.ids {
		for _, tx := range view {
			fmt.Println(tx.ID, renderer.Transaction(tx))
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderTransactions(renderer.NewTransactionList(view, tracker.Pattern{})))
	return subcommands.ExitSuccess
}
