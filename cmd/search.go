package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
)

type searchCmd struct {
	caseSensitive bool
	check         bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "filter transactions with a regular expression" }
func (*searchCmd) Usage() string {
	return `pft search [-cs] [-check] <pattern>

  Filters the transaction list with a regular expression, applied to the
  description, category and amount of each record. Matches are highlighted.
  A malformed pattern filters nothing.

Usage Examples:
$ pft search 'coffee|tea'
$ pft search -cs Coffee
$ pft search -check '(unbalanced'
`
}

func (p *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.caseSensitive, "cs", false, "Case-sensitive matching.")
	f.BoolVar(&p.check, "check", false, "Only check the pattern syntax, do not search.")
}

func (p *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pattern := strings.Join(f.Args(), " ")

	if p.check {
		if res := tracker.CheckPattern(pattern); !res.Valid {
			fmt.Fprintln(os.Stderr, res.Message)
			return subcommands.ExitFailure
		}
		fmt.Println("pattern is valid")
		return subcommands.ExitSuccess
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	compiled := tracker.Compile(pattern, p.caseSensitive)
	if pattern != "" && !compiled.Active() {
		// malformed patterns degrade to no filter, but the user should know.
		fmt.Fprintln(os.Stderr, tracker.ErrorMessage(pattern))
	}
	store.SetSearch(compiled)

	printMarkdown(renderer.RenderTransactions(renderer.NewTransactionList(store.SortedView(), compiled)))
	return subcommands.ExitSuccess
}
