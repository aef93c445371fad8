package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/marcward/aivest"
)

type createCmd struct {
	name     string
	capital  float64
	currency string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new portfolio" }
func (*createCmd) Usage() string {
	return `aivest create -name <name> -capital <amount> [-currency <code>]

  Creates a new portfolio funded with the given initial capital. All of the
  capital starts as cash.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the new portfolio.")
	f.Float64Var(&c.capital, "capital", 0, "Initial capital, all in cash.")
	f.StringVar(&c.currency, "currency", "USD", "ISO currency code for the portfolio.")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	p, err := store.CreatePortfolio(c.name, aivest.M(c.capital, c.currency))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating portfolio:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created portfolio %q with %s in cash.\nID: %s\n", p.Name, p.CurrentCash, p.ID)
	return subcommands.ExitSuccess
}
