package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/advisor"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the spending advisor" }
func (*assistCmd) Usage() string {
	return `pft assist [<question>...]

  Starts an interactive session with the AI spending advisor, grounded in
  your recorded transactions. An initial question may be given on the
  command line.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	on := tracker.Today()
	briefing := advisor.Briefing(store.StatisticsOn(on), store.SortedView(), on)
	a := advisor.New(os.Stdout, os.Stdin, cfg.Assist.Model)

	var prompts []string
	if initialPrompt != "" {
		prompts = append(prompts, initialPrompt)
	}
	if err := a.Run(ctx, client, briefing, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
