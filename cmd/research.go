package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/marcward/aivest"
	"github.com/marcward/aivest/research"
)

type researchCmd struct {
	portfolio    string
	limit        int
	maxPositions int
}

func (*researchCmd) Name() string { return "research" }
func (*researchCmd) Synopsis() string {
	return "research companies against the portfolio's criteria and save recommendations"
}
func (*researchCmd) Usage() string {
	return `aivest research -P <portfolio> [-limit <n>] [-max-positions <n>]

  Asks the research model to find companies matching the portfolio's
  investment criteria, scores each one, and saves trade recommendations
  sized against the available cash. Individual companies that fail to
  research are skipped. Requires GEMINI_API_KEY.
`
}

func (c *researchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "P", "", "Portfolio id or name.")
	f.IntVar(&c.limit, "limit", 5, "Maximum number of companies to research.")
	f.IntVar(&c.maxPositions, "max-positions", 3, "Maximum number of positions to recommend.")
}

func (c *researchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, cfg, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	p, err := findPortfolio(store, c.portfolio)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	researcher := research.New(client, cfg.Research.Model, newLogger(cfg))

	symbols, err := researcher.FindCompanies(ctx, p.Criteria, c.limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error finding companies:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Researching %d companies...\n", len(symbols))

	var researches []aivest.CompanyResearch
	for _, symbol := range symbols {
		r, err := researcher.ResearchCompany(ctx, symbol, p.Criteria)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", symbol, err)
			continue
		}
		fmt.Printf("- %s (%s): %d/100\n", r.Symbol, r.CompanyName, r.Score)
		researches = append(researches, r)
	}
	if len(researches) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no company could be researched.")
		return subcommands.ExitFailure
	}

	recs, err := researcher.GenerateRecommendations(ctx, p.ID, researches, p.CurrentCash, c.maxPositions)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating recommendations:", err)
		return subcommands.ExitFailure
	}
	if err := store.SaveRecommendations(recs); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving recommendations:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("\nSaved %d recommendations:\n\n", len(recs))
	printMarkdown(recommendationTable(recs))
	fmt.Println("Execute one with: aivest execute -id <recommendation-id>")
	return subcommands.ExitSuccess
}
