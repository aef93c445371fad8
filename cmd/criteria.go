package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type criteriaCmd struct {
	portfolio string
	add       string
	weight    float64
}

func (*criteriaCmd) Name() string     { return "criteria" }
func (*criteriaCmd) Synopsis() string { return "list or add investment criteria" }
func (*criteriaCmd) Usage() string {
	return `aivest criteria -P <portfolio> [-add <description> [-weight <w>]]

  Without -add, lists the portfolio's investment criteria. With -add,
  records a new criterion guiding future research.
`
}

func (c *criteriaCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "P", "", "Portfolio id or name.")
	f.StringVar(&c.add, "add", "", "Description of a criterion to add.")
	f.Float64Var(&c.weight, "weight", 1.0, "Relative weight of the added criterion.")
}

func (c *criteriaCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.add != "" {
		criterion, err := store.AddCriteria(p.ID, c.add, c.weight)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error adding criterion:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Added criterion %s: %s (weight %.2f)\n", criterion.ID, criterion.Description, criterion.Weight)
		return subcommands.ExitSuccess
	}

	if len(p.Criteria) == 0 {
		fmt.Println("No criteria yet. Add one with: aivest criteria -P", p.ID, "-add '...'")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	b.WriteString("| ID | Description | Weight | Active |\n")
	b.WriteString("|---|---|---:|---|\n")
	for _, criterion := range p.Criteria {
		fmt.Fprintf(&b, "| %s | %s | %.2f | %t |\n",
			criterion.ID, criterion.Description, criterion.Weight, criterion.Active)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
