package research

import (
	"fmt"
	"strings"

	"github.com/marcward/aivest"
)

// criteriaBlock renders active criteria as a weighted bullet list.
func criteriaBlock(criteria []aivest.InvestmentCriteria) string {
	var b strings.Builder
	for _, c := range criteria {
		if !c.Active {
			continue
		}
		fmt.Fprintf(&b, "- %s (weight %.2f)\n", c.Description, c.Weight)
	}
	if b.Len() == 0 {
		b.WriteString("- long-term value at a reasonable price (weight 1.00)\n")
	}
	return b.String()
}

func findCompaniesPrompt(criteria []aivest.InvestmentCriteria, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an equity research assistant. Find up to %d publicly traded companies matching the following investment criteria:\n\n", limit)
	b.WriteString(criteriaBlock(criteria))
	b.WriteString("\nAnswer with ticker symbols only, one per line, no commentary.\n")
	return b.String()
}

func researchCompanyPrompt(symbol string, criteria []aivest.InvestmentCriteria) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an equity research assistant. Assess the company with ticker symbol %s against the following investment criteria:\n\n", symbol)
	b.WriteString(criteriaBlock(criteria))
	b.WriteString(`
Answer with a single JSON object, no markdown fences, no commentary:

{"companyName": "...", "score": <integer 0-100>, "reasoning": "..."}
`)
	return b.String()
}

func recommendationsPrompt(researches []aivest.CompanyResearch, availableCash aivest.Money, maxPositions int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a portfolio manager with %s of cash to deploy across at most %d positions.\n", availableCash, maxPositions)
	b.WriteString("Given the research below, propose trades.\n\nResearch:\n")
	for _, r := range researches {
		fmt.Fprintf(&b, "- %s (%s), score %d/100: %s\n", r.Symbol, r.CompanyName, r.Score, r.Reasoning)
	}
	b.WriteString(`
Answer with a single JSON array, no markdown fences, no commentary. Each
element:

{"symbol": "...", "action": "BUY"|"SELL"|"HOLD", "quantity": <integer, 0 to size at execution>, "reasoning": "...", "score": <integer 0-100>, "confidence": <number 0-1>}
`)
	return b.String()
}
