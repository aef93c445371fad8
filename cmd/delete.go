package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteCmd struct {
	portfolio string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a portfolio and all its records" }
func (*deleteCmd) Usage() string {
	return `aivest delete -P <portfolio>

  Deletes a portfolio along with its transactions and recommendations.
  Other portfolios are untouched.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "P", "", "Portfolio id or name.")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	p, err := findPortfolio(store, c.portfolio)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	deleted, err := store.DeletePortfolio(p.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error deleting portfolio:", err)
		return subcommands.ExitFailure
	}
	if !deleted {
		fmt.Printf("Portfolio %s was already gone.\n", p.ID)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Deleted portfolio %q (%s) and all its records.\n", p.Name, p.ID)
	return subcommands.ExitSuccess
}
