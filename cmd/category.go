package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"

	"github.com/etnz/tracker"
)

type categoryCmd struct {
	add string
	rm  string
}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "list or change the configured categories" }
func (*categoryCmd) Usage() string {
	return `pft category [-add <name>] [-rm <name>]

  Without flags, lists the configured categories. -add and -rm change the
  list; removing a category does not touch transactions already using it.

Usage Examples:
$ pft category
$ pft category -add Travel
$ pft category -rm Fees
`
}

func (p *categoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.add, "add", "", "Add a category.")
	f.StringVar(&p.rm, "rm", "", "Remove a category.")
}

func (p *categoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	settings := store.Settings()
	categories := settings.Categories

	changed := false
	if p.add != "" {
		if res := tracker.ValidateCategoryText(p.add); !res.Valid {
			fmt.Fprintln(os.Stderr, "Error:", res.Message)
			return subcommands.ExitFailure
		}
		if settings.HasCategory(p.add) {
			fmt.Fprintf(os.Stderr, "Error: category %q already exists\n", p.add)
			return subcommands.ExitFailure
		}
		categories = append(categories, p.add)
		changed = true
	}
	if p.rm != "" {
		i := slices.Index(categories, p.rm)
		if i < 0 {
			fmt.Fprintf(os.Stderr, "Error: no category %q\n", p.rm)
			return subcommands.ExitFailure
		}
		categories = slices.Delete(categories, i, i+1)
		changed = true
	}

	if changed {
		if err := store.SetCategories(categories); err != nil {
			return fail(err)
		}
	}
	for _, c := range store.Settings().Categories {
		fmt.Println(c)
	}
	return subcommands.ExitSuccess
}
