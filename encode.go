package aivest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// This file persists the store's collections as JSON array files, one per
// collection, rewritten in full on every save. Dates are RFC 3339 strings
// and re-hydrated to timestamps on load. Field order is kept stable with
// jsonObjectWriter so the files diff cleanly under version control.

// MarshalJSON implements the json.Marshaler interface for Holding.
func (h *Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", h.Symbol)
	w.Append("quantity", h.Quantity)
	w.Append("averageCost", h.AverageCost)
	w.Optional("currentPrice", h.Price)
	w.Append("lastUpdated", h.LastUpdated)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Holding.
func (h *Holding) UnmarshalJSON(data []byte) error {
	var js struct {
		Symbol       string    `json:"symbol"`
		Quantity     int64     `json:"quantity"`
		AverageCost  Money     `json:"averageCost"`
		CurrentPrice Money     `json:"currentPrice"`
		LastUpdated  time.Time `json:"lastUpdated"`
	}
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	h.Symbol = js.Symbol
	h.Quantity = js.Quantity
	h.AverageCost = js.AverageCost
	h.Price = js.CurrentPrice
	h.LastUpdated = js.LastUpdated
	return nil
}

// MarshalJSON implements the json.Marshaler interface for InvestmentCriteria.
func (c InvestmentCriteria) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", c.ID)
	w.Append("description", c.Description)
	w.Append("weight", c.Weight)
	w.Append("active", c.Active)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for InvestmentCriteria.
func (c *InvestmentCriteria) UnmarshalJSON(data []byte) error {
	var js struct {
		ID          string  `json:"id"`
		Description string  `json:"description"`
		Weight      float64 `json:"weight"`
		Active      bool    `json:"active"`
	}
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	*c = InvestmentCriteria(js)
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Portfolio.
// Holdings are written as an array sorted by symbol.
func (p *Portfolio) MarshalJSON() ([]byte, error) {
	holdings := make([]*Holding, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		holdings = append(holdings, h)
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Symbol < holdings[j].Symbol })

	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Append("currency", p.Currency)
	w.Append("initialCapital", p.InitialCapital)
	w.Append("currentCash", p.CurrentCash)
	w.Append("createdAt", p.CreatedAt)
	w.Optional("criteria", p.Criteria)
	w.Append("holdings", holdings)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Portfolio.
func (p *Portfolio) UnmarshalJSON(data []byte) error {
	var js struct {
		ID             string               `json:"id"`
		Name           string               `json:"name"`
		Currency       string               `json:"currency"`
		InitialCapital Money                `json:"initialCapital"`
		CurrentCash    Money                `json:"currentCash"`
		CreatedAt      time.Time            `json:"createdAt"`
		Criteria       []InvestmentCriteria `json:"criteria"`
		Holdings       []*Holding           `json:"holdings"`
	}
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	p.ID = js.ID
	p.Name = js.Name
	p.Currency = js.Currency
	p.InitialCapital = js.InitialCapital
	p.CurrentCash = js.CurrentCash
	p.CreatedAt = js.CreatedAt
	p.Criteria = js.Criteria
	p.Holdings = make(map[string]*Holding, len(js.Holdings))
	for _, h := range js.Holdings {
		p.Holdings[h.Symbol] = h
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("portfolioId", t.PortfolioID)
	w.Append("symbol", t.Symbol)
	w.Append("type", t.Type)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("timestamp", t.Timestamp)
	w.Optional("reasoning", t.Reasoning)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var js struct {
		ID          string          `json:"id"`
		PortfolioID string          `json:"portfolioId"`
		Symbol      string          `json:"symbol"`
		Type        TransactionType `json:"type"`
		Quantity    int64           `json:"quantity"`
		Price       Money           `json:"price"`
		Timestamp   time.Time       `json:"timestamp"`
		Reasoning   string          `json:"reasoning"`
	}
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	*t = Transaction(js)
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Recommendation.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("portfolioId", r.PortfolioID)
	w.Append("symbol", r.Symbol)
	w.Append("action", r.Action)
	w.Optional("quantity", r.Quantity)
	w.Append("reasoning", r.Reasoning)
	w.Append("score", r.Score)
	w.Append("confidence", r.Confidence)
	w.Append("executed", r.Executed)
	w.Optional("executedAt", r.ExecutedAt)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Recommendation.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var js struct {
		ID          string    `json:"id"`
		PortfolioID string    `json:"portfolioId"`
		Symbol      string    `json:"symbol"`
		Action      Action    `json:"action"`
		Quantity    int64     `json:"quantity"`
		Reasoning   string    `json:"reasoning"`
		Score       int       `json:"score"`
		Confidence  float64   `json:"confidence"`
		Executed    bool      `json:"executed"`
		ExecutedAt  time.Time `json:"executedAt"`
	}
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	*r = Recommendation(js)
	return nil
}

// saveCollection writes one collection file in full, wrapping any I/O error
// in a PersistenceError. No write-ahead staging is attempted: a crash
// mid-write can corrupt the file, the accepted hazard of the flat-file model.
func saveCollection(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return &PersistenceError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}

// loadCollection reads one collection file. A missing file is not an error;
// the caller starts empty.
func loadCollection(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) savePortfolios() error {
	list := make([]*Portfolio, 0, len(s.portfolios))
	for _, p := range s.portfolios {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return saveCollection(filepath.Join(s.dir, portfoliosFile), list)
}

func (s *Store) saveTransactions() error {
	return saveCollection(filepath.Join(s.dir, transactionsFile), s.transactions)
}

func (s *Store) saveRecommendations() error {
	list := make([]Recommendation, 0, len(s.recommendations))
	for _, r := range s.recommendations {
		list = append(list, *r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return saveCollection(filepath.Join(s.dir, recommendationsFile), list)
}

// load reads all three collection files. Missing or malformed files are
// logged and treated as empty collections, never as fatal errors.
func (s *Store) load() {
	var portfolios []*Portfolio
	path := filepath.Join(s.dir, portfoliosFile)
	if err := loadCollection(path, &portfolios); err != nil {
		s.log.Warn().Str("path", path).Err(err).Msg("unreadable portfolios file, starting empty")
		portfolios = nil
	}
	for _, p := range portfolios {
		if p.Holdings == nil {
			p.Holdings = make(map[string]*Holding)
		}
		s.portfolios[p.ID] = p
	}

	path = filepath.Join(s.dir, transactionsFile)
	if err := loadCollection(path, &s.transactions); err != nil {
		s.transactions = nil
		s.log.Warn().Str("path", path).Err(err).Msg("unreadable transactions file, starting empty")
	}

	var recs []Recommendation
	path = filepath.Join(s.dir, recommendationsFile)
	if err := loadCollection(path, &recs); err != nil {
		s.log.Warn().Str("path", path).Err(err).Msg("unreadable recommendations file, starting empty")
		recs = nil
	}
	for i := range recs {
		r := recs[i]
		s.recommendations[r.ID] = &r
	}
}
