package aivest

import (
	"context"
	"time"
)

// Quote is one observed market price.
type Quote struct {
	Symbol    string
	Price     Money
	Timestamp time.Time
	Source    string
}

// BatchMiss records one symbol that a batch lookup could not price, so a
// quietly missing price stays visible to callers and tests.
type BatchMiss struct {
	Symbol string
	Err    error
}

// BatchQuotes is the best-effort result of a batch price lookup.
type BatchQuotes struct {
	Prices map[string]Money
	Missed []BatchMiss
}

// PriceProvider is the narrow interface the ledger consumes for market
// prices. CurrentPrice fails on an unknown symbol or a network error;
// BatchPrices is best-effort and reports per-symbol misses instead of
// failing the whole call.
type PriceProvider interface {
	CurrentPrice(ctx context.Context, symbol string) (Quote, error)
	BatchPrices(ctx context.Context, symbols []string) (BatchQuotes, error)
}
