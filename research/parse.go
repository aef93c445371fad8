package research

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marcward/aivest"
)

// stripFences removes a surrounding markdown code fence, which models add
// despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func isSymbol(s string) bool {
	if s == "" || len(s) > 10 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}

// parseSymbols extracts up to limit distinct ticker symbols from a model
// response, one per line or comma-separated, ignoring anything that does
// not look like a ticker.
func parseSymbols(text string, limit int) []string {
	var symbols []string
	seen := make(map[string]bool)
	for _, line := range strings.FieldsFunc(stripFences(text), func(r rune) bool {
		return r == '\n' || r == ','
	}) {
		sym := aivest.NormalizeSymbol(strings.Trim(line, " \t*-"))
		if !isSymbol(sym) || seen[sym] {
			continue
		}
		seen[sym] = true
		symbols = append(symbols, sym)
		if len(symbols) == limit {
			break
		}
	}
	return symbols
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func parseResearch(symbol, text string) (aivest.CompanyResearch, error) {
	var payload struct {
		CompanyName string `json:"companyName"`
		Score       int    `json:"score"`
		Reasoning   string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &payload); err != nil {
		return aivest.CompanyResearch{}, fmt.Errorf("parsing research response: %w", err)
	}
	return aivest.CompanyResearch{
		Symbol:      symbol,
		CompanyName: payload.CompanyName,
		Score:       clampScore(payload.Score),
		Reasoning:   payload.Reasoning,
	}, nil
}

type parsedRecommendation struct {
	Symbol     string
	Action     aivest.Action
	Quantity   int64
	Reasoning  string
	Score      int
	Confidence float64
}

// parseRecommendations parses a model's trade proposals. Invalid entries
// are returned as errors alongside the valid ones so the caller can log
// and skip them.
func parseRecommendations(text string) ([]parsedRecommendation, []error) {
	var payload []struct {
		Symbol     string  `json:"symbol"`
		Action     string  `json:"action"`
		Quantity   int64   `json:"quantity"`
		Reasoning  string  `json:"reasoning"`
		Score      int     `json:"score"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &payload); err != nil {
		return nil, []error{fmt.Errorf("parsing recommendations response: %w", err)}
	}

	var (
		recs []parsedRecommendation
		errs []error
	)
	for i, p := range payload {
		sym := aivest.NormalizeSymbol(p.Symbol)
		if !isSymbol(sym) {
			errs = append(errs, fmt.Errorf("entry %d: invalid symbol %q", i, p.Symbol))
			continue
		}
		action, err := aivest.ParseAction(p.Action)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i, sym, err))
			continue
		}
		if p.Quantity < 0 {
			errs = append(errs, fmt.Errorf("entry %d (%s): negative quantity %d", i, sym, p.Quantity))
			continue
		}
		confidence := p.Confidence
		if confidence < 0 {
			confidence = 0
		} else if confidence > 1 {
			confidence = 1
		}
		recs = append(recs, parsedRecommendation{
			Symbol:     sym,
			Action:     action,
			Quantity:   p.Quantity,
			Reasoning:  p.Reasoning,
			Score:      clampScore(p.Score),
			Confidence: confidence,
		})
	}
	return recs, errs
}
