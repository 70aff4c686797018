package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type clearCmd struct {
	force bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete every transaction" }
func (*clearCmd) Usage() string {
	return `pft clear -f

  Deletes every transaction. Settings and the budget cap are kept. The -f
  flag is required; there is no undo.
`
}

func (p *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.force, "f", false, "Confirm the deletion.")
}

func (p *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !p.force {
		fmt.Fprintln(os.Stderr, "Error: clear deletes every transaction, pass -f to confirm")
		return subcommands.ExitUsageError
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	count := len(store.Transactions())
	if err := store.ClearAll(); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted %d transactions.\n", count)
	return subcommands.ExitSuccess
}
