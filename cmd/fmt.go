package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/marcward/aivest"
)

// printMarkdown renders markdown for the terminal. On any rendering
// failure the raw markdown is printed instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// portfolioTable renders portfolios as a markdown table.
func portfolioTable(portfolios []*aivest.Portfolio) string {
	var b strings.Builder
	b.WriteString("| ID | Name | Cash | Holdings | Created |\n")
	b.WriteString("|---|---|---:|---:|---|\n")
	for _, p := range portfolios {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s |\n",
			p.ID, p.Name, p.CurrentCash, len(p.Holdings), p.CreatedAt.Format("2006-01-02"))
	}
	return b.String()
}

// transactionTable renders transactions as a markdown table.
func transactionTable(txs []aivest.Transaction) string {
	var b strings.Builder
	b.WriteString("| When | Type | Symbol | Qty | Price | Total |\n")
	b.WriteString("|---|---|---|---:|---:|---:|\n")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s |\n",
			tx.Timestamp.Format("2006-01-02 15:04"), tx.Type, tx.Symbol, tx.Quantity, tx.Price, tx.TotalAmount())
	}
	return b.String()
}

// recommendationTable renders recommendations as a markdown table.
func recommendationTable(recs []aivest.Recommendation) string {
	var b strings.Builder
	b.WriteString("| ID | Action | Symbol | Qty | Score | Confidence | Executed |\n")
	b.WriteString("|---|---|---|---:|---:|---:|---|\n")
	for _, r := range recs {
		qty := fmt.Sprint(r.Quantity)
		if r.Quantity == 0 {
			qty = "auto"
		}
		executed := "no"
		if r.Executed {
			executed = r.ExecutedAt.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %.0f%% | %s |\n",
			r.ID, r.Action, r.Symbol, qty, r.Score, r.Confidence*100, executed)
	}
	return b.String()
}
