package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type executeCmd struct {
	id string
}

func (*executeCmd) Name() string     { return "execute" }
func (*executeCmd) Synopsis() string { return "execute a saved recommendation" }
func (*executeCmd) Usage() string {
	return `aivest execute -id <recommendation-id>

  Executes a pending recommendation as a market order. A BUY without an
  explicit quantity is sized to roughly a tenth of the portfolio's cash;
  a SELL without one closes the position. Each recommendation executes at
  most once.
`
}

func (c *executeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "ID of the recommendation to execute.")
}

func (c *executeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := store.ExecuteRecommendation(ctx, c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error executing recommendation:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Executed: %s %d %s at %s (total %s).\n", tx.Type, tx.Quantity, tx.Symbol, tx.Price, tx.TotalAmount())
	return subcommands.ExitSuccess
}
