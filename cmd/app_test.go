package cmd

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/marcward/aivest"
)

type fixedPrices struct{}

func (fixedPrices) CurrentPrice(_ context.Context, symbol string) (aivest.Quote, error) {
	return aivest.Quote{Symbol: symbol, Price: aivest.M(100, "USD"), Timestamp: time.Now(), Source: "fixed"}, nil
}

func (fixedPrices) BatchPrices(_ context.Context, symbols []string) (aivest.BatchQuotes, error) {
	prices := make(map[string]aivest.Money, len(symbols))
	for _, s := range symbols {
		prices[s] = aivest.M(100, "USD")
	}
	return aivest.BatchQuotes{Prices: prices}, nil
}

func newTestStore(t *testing.T) *aivest.Store {
	t.Helper()
	store, err := aivest.Open(t.TempDir(), fixedPrices{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return store
}

func TestFindPortfolio(t *testing.T) {
	store := newTestStore(t)
	growth, err := store.CreatePortfolio("growth", aivest.M(10000, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreatePortfolio("income", aivest.M(5000, "USD")); err != nil {
		t.Fatal(err)
	}

	byID, err := findPortfolio(store, growth.ID)
	if err != nil || byID.ID != growth.ID {
		t.Errorf("by id: got %v, %v", byID, err)
	}

	byName, err := findPortfolio(store, "growth")
	if err != nil || byName.ID != growth.ID {
		t.Errorf("by name: got %v, %v", byName, err)
	}

	if _, err := findPortfolio(store, "nope"); err == nil {
		t.Error("expected an error for an unknown portfolio")
	}
}

func TestFindPortfolioAmbiguousName(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.CreatePortfolio("twin", aivest.M(1000, "USD")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreatePortfolio("twin", aivest.M(2000, "USD")); err != nil {
		t.Fatal(err)
	}

	_, err := findPortfolio(store, "twin")
	if err == nil || !strings.Contains(err.Error(), "use an id") {
		t.Errorf("expected an ambiguity error, got %v", err)
	}
}

func TestTables(t *testing.T) {
	store := newTestStore(t)
	p, err := store.CreatePortfolio("growth", aivest.M(10000, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	tx, err := store.BuyStock(context.Background(), p.ID, "AAPL", 5)
	if err != nil {
		t.Fatal(err)
	}

	portfolios := portfolioTable(store.ListPortfolios())
	if !strings.Contains(portfolios, "growth") || !strings.Contains(portfolios, p.ID) {
		t.Errorf("portfolio table is missing data:\n%s", portfolios)
	}

	txs := transactionTable([]aivest.Transaction{tx})
	for _, want := range []string{"BUY", "AAPL", "| 5 |", "$500.00"} {
		if !strings.Contains(txs, want) {
			t.Errorf("transaction table is missing %q:\n%s", want, txs)
		}
	}

	recs := recommendationTable([]aivest.Recommendation{
		{ID: "r1", Action: aivest.ActionBuy, Symbol: "MSFT", Quantity: 0, Score: 90, Confidence: 0.8},
		{ID: "r2", Action: aivest.ActionSell, Symbol: "AAPL", Quantity: 3, Score: 20, Confidence: 0.5, Executed: true, ExecutedAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
	})
	for _, want := range []string{"auto", "80%", "2026-04-01", "| 3 |"} {
		if !strings.Contains(recs, want) {
			t.Errorf("recommendation table is missing %q:\n%s", want, recs)
		}
	}
}
