package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tracker"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the collection from a JSON file" }
func (*importCmd) Usage() string {
	return `pft import <file>

  Replaces the whole collection with the records in the file (or stdin when
  the file is "-"). The import is all-or-nothing: the first invalid record
  aborts it with its position, and nothing is written.

Usage Examples:
$ pft import backup.json
$ curl -s https://example.com/seed.json | pft import -
`
}

func (*importCmd) SetFlags(_ *flag.FlagSet) {}

func (p *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import takes exactly one file")
		return subcommands.ExitUsageError
	}

	in := os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		in = file
	}

	txs, err := tracker.ImportTransactions(in)
	if err != nil {
		return fail(err)
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	if err := store.ImportAll(txs); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported %d transactions.\n", len(txs))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the collection as a JSON file" }
func (*exportCmd) Usage() string {
	return `pft export [-o <file>]

  Writes the whole collection as a pretty-printed JSON array, to stdout or
  to the given file. The output is accepted back by 'pft import' unchanged.

Usage Examples:
$ pft export -o backup.json
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file. Defaults to stdout.")
}

func (p *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	out := os.Stdout
	if p.output != "" {
		file, err := os.Create(p.output)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		out = file
	}

	if err := tracker.ExportTransactions(out, store.Transactions()); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
