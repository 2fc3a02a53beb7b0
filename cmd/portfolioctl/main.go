// Command portfolioctl analyzes trade CSV files and manages the cached
// portfolio from the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&analyzeCmd{}, "portfolio")
	commander.Register(&showCmd{}, "portfolio")
	commander.Register(&resetCmd{}, "portfolio")
	commander.Register(&chartCmd{}, "portfolio")
	commander.Register(&listCmd{}, "cache")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
