package aivest

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	portfoliosFile      = "portfolios.json"
	transactionsFile    = "transactions.json"
	recommendationsFile = "recommendations.json"
)

const (
	manualBuyReason  = "Manual buy order executed at market price"
	manualSellReason = "Manual sell order executed at market price"
)

// Store owns the portfolio collection, the append-only transaction log and
// the recommendation collection, and persists them to JSON files in a
// directory. It is an explicit object passed to callers, not a process-wide
// singleton, so the ledger stays testable.
//
// Every save rewrites a full collection file. That is acceptable for a
// single-writer CLI; two concurrent invocations on the same directory race
// with last-writer-wins semantics.
type Store struct {
	mu     sync.RWMutex
	dir    string
	prices PriceProvider
	log    zerolog.Logger

	portfolios      map[string]*Portfolio
	transactions    []Transaction
	recommendations map[string]*Recommendation
}

// Open loads the store from dir, creating the directory if needed. A missing
// or unparsable collection file is treated as "start empty", not as an
// error: a warning is logged and the file will be rewritten on the next
// save.
func Open(dir string, prices PriceProvider, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create store directory %q: %w", dir, err)
	}
	s := &Store{
		dir:             dir,
		prices:          prices,
		log:             log.With().Str("component", "store").Logger(),
		portfolios:      make(map[string]*Portfolio),
		recommendations: make(map[string]*Recommendation),
	}
	s.load()
	return s, nil
}

// CreatePortfolio constructs a new portfolio holding its full capital as
// cash, and persists the collection.
func (s *Store) CreatePortfolio(name string, initialCapital Money) (*Portfolio, error) {
	if name == "" {
		return nil, validationf("portfolio name is empty")
	}
	if !initialCapital.IsPositive() {
		return nil, validationf("initial capital must be positive, got %s", initialCapital)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := NewPortfolio(name, initialCapital)
	s.portfolios[p.ID] = p
	if err := s.savePortfolios(); err != nil {
		delete(s.portfolios, p.ID)
		return nil, err
	}
	return p, nil
}

// GetPortfolio resolves a portfolio by id.
func (s *Store) GetPortfolio(id string) (*Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.portfolio(id)
}

func (s *Store) portfolio(id string) (*Portfolio, error) {
	p, ok := s.portfolios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPortfolioNotFound, id)
	}
	return p, nil
}

// ListPortfolios returns all portfolios, oldest first.
func (s *Store) ListPortfolios() []*Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Portfolio, 0, len(s.portfolios))
	for _, p := range s.portfolios {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list
}

// AddCriteria appends an investment criterion to the portfolio and persists
// the collection.
func (s *Store) AddCriteria(portfolioID, description string, weight float64) (InvestmentCriteria, error) {
	if description == "" {
		return InvestmentCriteria{}, validationf("criteria description is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.portfolio(portfolioID)
	if err != nil {
		return InvestmentCriteria{}, err
	}
	c := p.AddCriteria(description, weight)
	if err := s.savePortfolios(); err != nil {
		return InvestmentCriteria{}, err
	}
	return c, nil
}

// BuyStock fetches the current market price for symbol, applies the buy to
// the portfolio's ledger, appends a BUY transaction and persists both
// collections. A provider failure aborts the whole operation with no state
// written.
func (s *Store) BuyStock(ctx context.Context, portfolioID, symbol string, quantity int64) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trade(ctx, portfolioID, symbol, TxBuy, quantity, manualBuyReason)
}

// SellStock is the symmetric sell operation. Share availability is
// validated by the ledger itself.
func (s *Store) SellStock(ctx context.Context, portfolioID, symbol string, quantity int64) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trade(ctx, portfolioID, symbol, TxSell, quantity, manualSellReason)
}

// trade serializes fetch-price, then mutate-ledger, then persist, in that
// order: the persisted price is always the one the ledger mutation used.
func (s *Store) trade(ctx context.Context, portfolioID, symbol string, typ TransactionType, quantity int64, reasoning string) (Transaction, error) {
	p, err := s.portfolio(portfolioID)
	if err != nil {
		return Transaction{}, err
	}
	symbol = NormalizeSymbol(symbol)

	quote, err := s.prices.CurrentPrice(ctx, symbol)
	if err != nil {
		return Transaction{}, err
	}

	switch typ {
	case TxBuy:
		err = p.AddHolding(symbol, quantity, quote.Price)
	case TxSell:
		err = p.RemoveHolding(symbol, quantity, quote.Price)
	default:
		err = validationf("unknown transaction type %q", typ)
	}
	if err != nil {
		return Transaction{}, err
	}

	tx := newTransaction(portfolioID, symbol, typ, quantity, quote.Price, reasoning)
	s.transactions = append(s.transactions, tx)

	if err := s.savePortfolios(); err != nil {
		return Transaction{}, err
	}
	if err := s.saveTransactions(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// GetPortfolioPerformance values the portfolio at current market prices.
// A portfolio with no holdings is valued from cash alone without calling
// the price provider. Symbols the provider could not price are logged and
// fall back to their average cost in the valuation.
func (s *Store) GetPortfolioPerformance(ctx context.Context, portfolioID string) (PerformanceMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.portfolio(portfolioID)
	if err != nil {
		return PerformanceMetrics{}, err
	}
	if len(p.Holdings) == 0 {
		return p.CalculateTotalValue(nil), nil
	}

	symbols := make([]string, 0, len(p.Holdings))
	for symbol := range p.Holdings {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	batch, err := s.prices.BatchPrices(ctx, symbols)
	if err != nil {
		return PerformanceMetrics{}, err
	}
	for _, miss := range batch.Missed {
		s.log.Warn().Str("symbol", miss.Symbol).Err(miss.Err).Msg("no market price, valuing at average cost")
	}
	return p.CalculateTotalValue(batch.Prices), nil
}

// GetTransactionHistory returns the portfolio's transactions, newest first.
func (s *Store) GetTransactionHistory(portfolioID string) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.portfolio(portfolioID); err != nil {
		return nil, err
	}
	var list []Transaction
	for _, tx := range s.transactions {
		if tx.PortfolioID == portfolioID {
			list = append(list, tx)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	return list, nil
}

// SaveRecommendations persists a batch of freshly generated recommendations.
func (s *Store) SaveRecommendations(recs []Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range recs {
		r := recs[i]
		s.recommendations[r.ID] = &r
	}
	return s.saveRecommendations()
}

// ListRecommendations returns the portfolio's recommendations, best score
// first.
func (s *Store) ListRecommendations(portfolioID string) []Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []Recommendation
	for _, r := range s.recommendations {
		if r.PortfolioID == portfolioID {
			list = append(list, *r)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Score > list[j].Score })
	return list
}

// ExecuteRecommendation executes a previously persisted recommendation
// through the ledger, at most once.
//
// A BUY with no preset quantity is sized at execution time: the investment
// is capped at 10% of the portfolio's current cash, divided by the fetched
// price and floored to whole shares. A SELL with no preset quantity closes
// the whole position.
func (s *Store) ExecuteRecommendation(ctx context.Context, recommendationID string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recommendations[recommendationID]
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %s", ErrRecommendationNotFound, recommendationID)
	}
	if rec.Executed {
		return Transaction{}, fmt.Errorf("%w: %s", ErrAlreadyExecuted, recommendationID)
	}
	p, err := s.portfolio(rec.PortfolioID)
	if err != nil {
		return Transaction{}, err
	}

	quantity := rec.Quantity
	switch rec.Action {
	case ActionBuy:
		if quantity == 0 {
			quote, err := s.prices.CurrentPrice(ctx, rec.Symbol)
			if err != nil {
				return Transaction{}, err
			}
			// cap the investment at 10% of current cash
			quantity = p.CurrentCash.Div(10).SharesFor(quote.Price)
			if quantity < 1 {
				return Transaction{}, validationf("cash budget %s cannot fund one share of %s at %s",
					p.CurrentCash.Div(10), rec.Symbol, quote.Price)
			}
		}
	case ActionSell:
		if quantity == 0 {
			h := p.Holding(rec.Symbol)
			if h == nil {
				return Transaction{}, fmt.Errorf("%w: %s", ErrHoldingNotFound, rec.Symbol)
			}
			quantity = h.Quantity
		}
	case ActionHold:
		return Transaction{}, validationf("cannot execute a HOLD recommendation")
	default:
		return Transaction{}, validationf("unknown action %q", rec.Action)
	}

	tx, err := s.trade(ctx, rec.PortfolioID, rec.Symbol, TransactionType(rec.Action), quantity, rec.Reasoning)
	if err != nil {
		return Transaction{}, err
	}

	if err := rec.markExecuted(time.Now()); err != nil {
		return Transaction{}, err
	}
	if err := s.saveRecommendations(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// DeletePortfolio removes the portfolio and cascades deletion to its own
// transactions and recommendations, leaving other portfolios' entries
// untouched. It reports whether anything was deleted and is an idempotent
// no-op on an unknown id.
func (s *Store) DeletePortfolio(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.portfolios[id]; !ok {
		return false, nil
	}
	delete(s.portfolios, id)

	kept := s.transactions[:0]
	for _, tx := range s.transactions {
		if tx.PortfolioID != id {
			kept = append(kept, tx)
		}
	}
	s.transactions = kept
	for rid, r := range s.recommendations {
		if r.PortfolioID == id {
			delete(s.recommendations, rid)
		}
	}

	if err := s.savePortfolios(); err != nil {
		return false, err
	}
	if err := s.saveTransactions(); err != nil {
		return false, err
	}
	if err := s.saveRecommendations(); err != nil {
		return false, err
	}
	return true, nil
}
