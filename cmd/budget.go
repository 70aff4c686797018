package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/etnz/tracker"
)

type budgetCmd struct {
	clear bool
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "show or set the monthly budget cap" }
func (*budgetCmd) Usage() string {
	return `pft budget [<amount>] [-clear]

  With an amount, sets the monthly budget cap. Without one, shows the cap
  and the month-to-date position. -clear removes the cap.

Usage Examples:
$ pft budget 500
$ pft budget
$ pft budget -clear
`
}

func (p *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.clear, "clear", false, "Remove the budget cap.")
}

func (p *budgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	switch {
	case p.clear:
		if err := store.ClearBudgetCap(); err != nil {
			return fail(err)
		}
		fmt.Println("Budget cap removed.")

	case f.NArg() == 1:
		limit, err := decimal.NewFromString(f.Arg(0))
		if err != nil {
			return fail(fmt.Errorf("invalid amount %q: %w", f.Arg(0), err))
		}
		if err := store.SetBudgetCap(limit); err != nil {
			return fail(err)
		}
		fmt.Printf("Budget cap set to %s.\n", tracker.M(limit, tracker.BaseCurrency))

	case f.NArg() == 0:
		stats := store.Statistics()
		if !stats.BudgetCap.IsPositive() {
			fmt.Println("No budget cap set.")
			return subcommands.ExitSuccess
		}
		fmt.Printf("Budget cap: %s, month to date: %s\n",
			tracker.M(stats.BudgetCap, tracker.BaseCurrency),
			tracker.M(stats.MonthToDate, tracker.BaseCurrency))
		if stats.OverBudget {
			fmt.Println("Over budget.")
		}

	default:
		fmt.Fprintln(os.Stderr, "Error: budget takes at most one amount")
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
