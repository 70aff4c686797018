package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"

	"github.com/etnz/tracker/cmd"
)

func main() {
	// Shell completion, a no-op outside of a completion request.
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	(&complete.Command{Sub: sub}).Complete("pft")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()

	// An unknown subcommand may be provided by an external pft-<name> binary.
	if args := flag.Args(); len(args) > 0 && !known(args[0]) {
		if ran, code := cmd.RunExtension(args[0], args[1:]); ran {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func known(name string) bool {
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return name == "help" || name == "flags" || name == "commands"
}
