package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type buyCmd struct {
	portfolio string
	symbol    string
	quantity  int64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the current market price" }
func (*buyCmd) Usage() string {
	return `aivest buy -P <portfolio> -s <symbol> -q <quantity>

  Buys shares at the current market price, deducting the cost from the
  portfolio's cash. Fails if the cash cannot cover the purchase.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "P", "", "Portfolio id or name.")
	f.StringVar(&c.symbol, "s", "", "Ticker symbol to buy.")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares to buy.")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	tx, err := store.BuyStock(ctx, p.ID, c.symbol, c.quantity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error buying:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Bought %d %s at %s (total %s).\n", tx.Quantity, tx.Symbol, tx.Price, tx.TotalAmount())
	return subcommands.ExitSuccess
}
