package research

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcward/aivest"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no tag", "```\n[1,2]\n```", "[1,2]"},
		{"surrounding whitespace", "  \n```json\n{}\n```\n", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestParseSymbols(t *testing.T) {
	text := "Here are some ideas:\nAAPL\nmsft, BRK.B\n- GOOG\nAAPL\nNot A Ticker Obviously\n"
	assert.Equal(t, []string{"AAPL", "MSFT", "BRK.B", "GOOG"}, parseSymbols(text, 10))
	assert.Equal(t, []string{"AAPL", "MSFT"}, parseSymbols(text, 2))
	assert.Empty(t, parseSymbols("no tickers here, sorry!", 10))
}

func TestParseResearch(t *testing.T) {
	research, err := parseResearch("AAPL", "```json\n{\"companyName\": \"Apple Inc.\", \"score\": 87, \"reasoning\": \"wide moat\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", research.Symbol)
	assert.Equal(t, "Apple Inc.", research.CompanyName)
	assert.Equal(t, 87, research.Score)
	assert.Equal(t, "wide moat", research.Reasoning)
}

func TestParseResearchClampsScore(t *testing.T) {
	research, err := parseResearch("AAPL", `{"companyName": "Apple Inc.", "score": 140, "reasoning": "enthusiastic"}`)
	require.NoError(t, err)
	assert.Equal(t, 100, research.Score)
}

func TestParseResearchMalformed(t *testing.T) {
	_, err := parseResearch("AAPL", "I cannot help with that.")
	assert.Error(t, err)
}

func TestParseRecommendations(t *testing.T) {
	text := `[
		{"symbol": "aapl", "action": "BUY", "quantity": 10, "reasoning": "strong", "score": 90, "confidence": 0.8},
		{"symbol": "MSFT", "action": "SELL", "quantity": 0, "reasoning": "overpriced", "score": 40, "confidence": 1.4},
		{"symbol": "GOOG", "action": "SHORT", "quantity": 5, "reasoning": "nope", "score": 10, "confidence": 0.2},
		{"symbol": "???", "action": "BUY", "quantity": 1, "reasoning": "nope", "score": 10, "confidence": 0.2}
	]`
	recs, errs := parseRecommendations(text)
	require.Len(t, recs, 2)
	assert.Len(t, errs, 2)

	assert.Equal(t, "AAPL", recs[0].Symbol)
	assert.Equal(t, aivest.ActionBuy, recs[0].Action)
	assert.Equal(t, int64(10), recs[0].Quantity)
	assert.Equal(t, 0.8, recs[0].Confidence)

	assert.Equal(t, "MSFT", recs[1].Symbol)
	assert.Equal(t, aivest.ActionSell, recs[1].Action)
	assert.Equal(t, int64(0), recs[1].Quantity)
	assert.Equal(t, 1.0, recs[1].Confidence)
}

func TestParseRecommendationsMalformed(t *testing.T) {
	recs, errs := parseRecommendations("not json at all")
	assert.Empty(t, recs)
	require.Len(t, errs, 1)
}

func TestPrompts(t *testing.T) {
	criteria := []aivest.InvestmentCriteria{
		{Description: "profitable SaaS", Weight: 0.7, Active: true},
		{Description: "ignored", Weight: 0.3, Active: false},
	}

	find := findCompaniesPrompt(criteria, 5)
	assert.Contains(t, find, "profitable SaaS")
	assert.Contains(t, find, "weight 0.70")
	assert.NotContains(t, find, "ignored")

	single := researchCompanyPrompt("AAPL", criteria)
	assert.Contains(t, single, "AAPL")
	assert.Contains(t, single, `"score"`)

	recs := recommendationsPrompt(
		[]aivest.CompanyResearch{{Symbol: "AAPL", CompanyName: "Apple Inc.", Score: 87, Reasoning: "wide moat"}},
		aivest.M(10000, "USD"), 3)
	assert.Contains(t, recs, "AAPL")
	assert.Contains(t, recs, "score 87/100")
	assert.True(t, strings.Contains(recs, "BUY"))
}

func TestCriteriaBlockFallback(t *testing.T) {
	assert.Contains(t, criteriaBlock(nil), "long-term value")
}
