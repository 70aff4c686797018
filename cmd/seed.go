package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type seedCmd struct {
	url string
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "install the sample dataset into an empty collection" }
func (*seedCmd) Usage() string {
	return `pft seed [-url <url>]

  Fetches the sample dataset and installs it, only when the collection is
  empty. The URL defaults to the configured seed source.
`
}

func (p *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.url, "url", "", "Seed source. Defaults to the configured one.")
}

func (p *seedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	url := p.url
	if url == "" {
		url = cfg.Seed.URL
	}
	if url == "" {
		fmt.Fprintln(os.Stderr, "Error: no seed URL configured, pass -url or set seed.url in the configuration")
		return subcommands.ExitFailure
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	if n := len(store.Transactions()); n > 0 {
		fmt.Fprintf(os.Stderr, "Error: collection already holds %d transactions, seed only fills an empty one\n", n)
		return subcommands.ExitFailure
	}
	if err := store.SeedIfEmpty(ctx, url); err != nil {
		return fail(err)
	}
	fmt.Printf("Seeded %d transactions.\n", len(store.Transactions()))
	return subcommands.ExitSuccess
}
