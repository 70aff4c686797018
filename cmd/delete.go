package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a transaction" }
func (*deleteCmd) Usage() string {
	return `pft delete <id>

  Deletes the identified transaction.
`
}

func (*deleteCmd) SetFlags(_ *flag.FlagSet) {}

func (p *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: delete takes exactly one transaction id")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	found, err := store.Remove(id)
	if err != nil {
		return fail(err)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Error: no transaction with id %q\n", id)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted %s\n", id)
	return subcommands.ExitSuccess
}
