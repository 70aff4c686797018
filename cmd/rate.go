package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/etnz/tracker"
)

type rateCmd struct {
	convert string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "list or set exchange rates, convert amounts" }
func (*rateCmd) Usage() string {
	return `pft rate [<code> <rate>] [-convert <amount> <code>]

  Without arguments, lists the configured exchange rates from the base
  currency. With a code and a rate, sets that rate. -convert turns a
  base-currency amount into the given currency.

Usage Examples:
$ pft rate
$ pft rate USD 1.10
$ pft rate -convert 100 USD
`
}

func (p *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.convert, "convert", "", "Amount to convert into the currency given as argument.")
}

func (p *rateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	if p.convert != "" {
		if f.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Error: -convert needs a currency code argument")
			return subcommands.ExitUsageError
		}
		amount, err := decimal.NewFromString(p.convert)
		if err != nil {
			return fail(fmt.Errorf("invalid amount %q: %w", p.convert, err))
		}
		code := strings.ToUpper(f.Arg(0))
		converted, ok := store.Settings().Convert(amount, code)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no rate configured for %s\n", code)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s = %s\n", tracker.M(amount, tracker.BaseCurrency), converted)
		return subcommands.ExitSuccess
	}

	switch f.NArg() {
	case 0:
		rates := store.Settings().Rates
		for _, code := range slices.Sorted(maps.Keys(rates)) {
			fmt.Printf("%s %s %s\n", tracker.BaseCurrency, code, rates[code])
		}
	case 2:
		rate, err := decimal.NewFromString(f.Arg(1))
		if err != nil {
			return fail(fmt.Errorf("invalid rate %q: %w", f.Arg(1), err))
		}
		code := strings.ToUpper(f.Arg(0))
		if err := store.SetRate(code, rate); err != nil {
			return fail(err)
		}
		fmt.Printf("1 %s = %s %s\n", tracker.BaseCurrency, rate, code)
	default:
		fmt.Fprintln(os.Stderr, "Error: rate takes no arguments, or a code and a rate")
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
