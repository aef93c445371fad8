package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type txCmd struct {
	portfolio string
	head      int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list a portfolio's transactions" }
func (*txCmd) Usage() string {
	return `aivest tx -P <portfolio> [-head <n>]

  Lists a portfolio's transactions, most recent first.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "P", "", "Portfolio id or name.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	txs, err := store.GetTransactionHistory(p.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.head > 0 && len(txs) > c.head {
		txs = txs[:c.head]
	}
	if len(txs) == 0 {
		fmt.Println("No transactions yet.")
		return subcommands.ExitSuccess
	}

	printMarkdown(transactionTable(txs))
	return subcommands.ExitSuccess
}
