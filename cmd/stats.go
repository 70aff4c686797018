package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
)

type statsCmd struct {
	on      string
	jsonOut bool
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show spending statistics" }
func (*statsCmd) Usage() string {
	return `pft stats [-on <date>] [-json]

  Shows the statistics derived from the collection: total, top category,
  trailing 7-day and month-to-date totals, and the per-category breakdown.

Usage Examples:
$ pft stats
$ pft stats -on 2024-05-01 -json
`
}

func (p *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.on, "on", tracker.Today().String(), "Reference day for the time windows (YYYY-MM-DD).")
	f.BoolVar(&p.jsonOut, "json", false, "Output the statistics view as JSON.")
}

func (p *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := tracker.ParseDate(p.on)
	if err != nil {
		return fail(err)
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	view := renderer.NewStats(store.StatisticsOn(on), on)
	if p.jsonOut {
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fail(err)
		}
		fmt.Println(string(data))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderStats(view))
	return subcommands.ExitSuccess
}
