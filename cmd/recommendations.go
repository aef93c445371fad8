package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type recommendationsCmd struct {
	portfolio string
	all       bool
}

func (*recommendationsCmd) Name() string     { return "recommendations" }
func (*recommendationsCmd) Synopsis() string { return "list saved recommendations" }
func (*recommendationsCmd) Usage() string {
	return `aivest recommendations -P <portfolio> [-all]

  Lists a portfolio's recommendations, best score first. By default only
  pending ones are shown; -all includes executed recommendations.
`
}

func (c *recommendationsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "P", "", "Portfolio id or name.")
	f.BoolVar(&c.all, "all", false, "Include executed recommendations.")
}

func (c *recommendationsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	recs := store.ListRecommendations(p.ID)
	if !c.all {
		pending := recs[:0]
		for _, r := range recs {
			if !r.Executed {
				pending = append(pending, r)
			}
		}
		recs = pending
	}
	if len(recs) == 0 {
		fmt.Println("No recommendations. Generate some with: aivest research -P", p.ID)
		return subcommands.ExitSuccess
	}

	printMarkdown(recommendationTable(recs))
	for _, r := range recs {
		if r.Reasoning != "" {
			printMarkdown(fmt.Sprintf("**%s %s**: %s\n", r.Action, r.Symbol, r.Reasoning))
		}
	}
	return subcommands.ExitSuccess
}
