package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type sellCmd struct {
	portfolio string
	symbol    string
	quantity  int64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares at the current market price" }
func (*sellCmd) Usage() string {
	return `aivest sell -P <portfolio> -s <symbol> -q <quantity>

  Sells shares at the current market price, adding the proceeds to the
  portfolio's cash. Fails if the portfolio holds fewer shares than requested.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "P", "", "Portfolio id or name.")
	f.StringVar(&c.symbol, "s", "", "Ticker symbol to sell.")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares to sell.")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	tx, err := store.SellStock(ctx, p.ID, c.symbol, c.quantity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error selling:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sold %d %s at %s (total %s).\n", tx.Quantity, tx.Symbol, tx.Price, tx.TotalAmount())
	return subcommands.ExitSuccess
}
