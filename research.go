package aivest

import "context"

// CompanyResearch is one scored assessment of a company against a
// portfolio's investment criteria.
type CompanyResearch struct {
	Symbol      string
	CompanyName string
	Score       int // 0-100
	Reasoning   string
}

// ResearchProvider is the interface the ledger consumes for investment
// research. Implementations are expected to be slow and fallible: every
// method takes a context and callers treat per-symbol failures as
// skippable.
type ResearchProvider interface {
	// FindCompanies returns up to limit ticker symbols worth researching
	// against the given criteria.
	FindCompanies(ctx context.Context, criteria []InvestmentCriteria, limit int) ([]string, error)

	// ResearchCompany scores one company against the criteria.
	ResearchCompany(ctx context.Context, symbol string, criteria []InvestmentCriteria) (CompanyResearch, error)

	// GenerateRecommendations turns researches into unexecuted
	// recommendations sized against the available cash.
	GenerateRecommendations(ctx context.Context, portfolioID string, researches []CompanyResearch, availableCash Money, maxPositions int) ([]Recommendation, error)
}
