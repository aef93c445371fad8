// Package research implements the ledger's ResearchProvider on top of the
// Gemini API: prompt templates in, parsed scores and recommendations out.
package research

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/marcward/aivest"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Service asks a Gemini model to find, score and size investment ideas.
type Service struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// New creates a research service. The genai client picks its API key up
// from the environment (GEMINI_API_KEY).
func New(client *genai.Client, model string, log zerolog.Logger) *Service {
	if model == "" {
		model = DefaultModel
	}
	return &Service{
		client: client,
		model:  model,
		log:    log.With().Str("component", "research").Logger(),
	}
}

// generate sends one prompt and returns the model's text response.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model %s", s.model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// FindCompanies returns up to limit ticker symbols matching the criteria.
func (s *Service) FindCompanies(ctx context.Context, criteria []aivest.InvestmentCriteria, limit int) ([]string, error) {
	text, err := s.generate(ctx, findCompaniesPrompt(criteria, limit))
	if err != nil {
		return nil, &aivest.ProviderError{Op: "find-companies", Err: err}
	}
	symbols := parseSymbols(text, limit)
	if len(symbols) == 0 {
		return nil, &aivest.ProviderError{Op: "find-companies", Err: fmt.Errorf("no symbols in response %q", text)}
	}
	s.log.Info().Strs("symbols", symbols).Msg("companies found")
	return symbols, nil
}

// ResearchCompany scores one company against the criteria.
func (s *Service) ResearchCompany(ctx context.Context, symbol string, criteria []aivest.InvestmentCriteria) (aivest.CompanyResearch, error) {
	symbol = aivest.NormalizeSymbol(symbol)
	text, err := s.generate(ctx, researchCompanyPrompt(symbol, criteria))
	if err != nil {
		return aivest.CompanyResearch{}, &aivest.ProviderError{Op: "research", Symbol: symbol, Err: err}
	}
	research, err := parseResearch(symbol, text)
	if err != nil {
		return aivest.CompanyResearch{}, &aivest.ProviderError{Op: "research", Symbol: symbol, Err: err}
	}
	s.log.Info().Str("symbol", symbol).Int("score", research.Score).Msg("company researched")
	return research, nil
}

// GenerateRecommendations turns researches into unexecuted recommendations
// sized against the available cash. Response entries that fail to validate
// are logged and skipped rather than aborting the whole batch.
func (s *Service) GenerateRecommendations(ctx context.Context, portfolioID string, researches []aivest.CompanyResearch, availableCash aivest.Money, maxPositions int) ([]aivest.Recommendation, error) {
	text, err := s.generate(ctx, recommendationsPrompt(researches, availableCash, maxPositions))
	if err != nil {
		return nil, &aivest.ProviderError{Op: "recommend", Err: err}
	}

	parsed, errs := parseRecommendations(text)
	for _, perr := range errs {
		s.log.Warn().Err(perr).Msg("skipping unparsable recommendation")
	}
	if len(parsed) == 0 {
		return nil, &aivest.ProviderError{Op: "recommend", Err: fmt.Errorf("no valid recommendations in response %q", text)}
	}

	recs := make([]aivest.Recommendation, 0, len(parsed))
	for _, p := range parsed {
		recs = append(recs, aivest.Recommendation{
			ID:          uuid.NewString(),
			PortfolioID: portfolioID,
			Symbol:      p.Symbol,
			Action:      p.Action,
			Quantity:    p.Quantity,
			Reasoning:   p.Reasoning,
			Score:       p.Score,
			Confidence:  p.Confidence,
		})
	}
	return recs, nil
}
