package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/subcommands"
)

type performanceCmd struct {
	portfolio string
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "value a portfolio at current market prices" }
func (*performanceCmd) Usage() string {
	return `aivest performance -P <portfolio>

  Values the portfolio at current market prices and reports total value,
  returns and unrealized gains. Holdings whose price cannot be fetched are
  valued at their average cost.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "P", "", "Portfolio id or name.")
}

func (c *performanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	metrics, err := store.GetPortfolioPerformance(ctx, p.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	fmt.Fprintf(&b, "- Total value: %s\n", metrics.TotalValue)
	fmt.Fprintf(&b, "- Cash: %s\n", p.CurrentCash)
	fmt.Fprintf(&b, "- Total returns: %s (%s)\n", metrics.TotalReturns, metrics.PercentageReturns)
	fmt.Fprintf(&b, "- Unrealized gains: %s\n", metrics.UnrealizedGains)

	if len(p.Holdings) > 0 {
		b.WriteString("\n| Symbol | Qty | Avg Cost | Price | Cost Basis |\n")
		b.WriteString("|---|---:|---:|---:|---:|\n")
		symbols := make([]string, 0, len(p.Holdings))
		for sym := range p.Holdings {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		for _, sym := range symbols {
			h := p.Holdings[sym]
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
				h.Symbol, h.Quantity, h.AverageCost, h.Price, h.CostBasis())
		}
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
