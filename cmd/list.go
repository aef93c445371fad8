package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all portfolios" }
func (*listCmd) Usage() string {
	return `aivest list

  Lists all portfolios, oldest first.
`
}

func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	portfolios := store.ListPortfolios()
	if len(portfolios) == 0 {
		fmt.Println("No portfolios yet. Create one with: aivest create")
		return subcommands.ExitSuccess
	}

	printMarkdown(portfolioTable(portfolios))
	return subcommands.ExitSuccess
}
