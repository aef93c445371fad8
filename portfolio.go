package aivest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Holding is a portfolio's position in one ticker symbol.
type Holding struct {
	Symbol      string
	Quantity    int64
	AverageCost Money     // weighted-average per-share cost basis
	Price       Money     // last price observed during a valuation pass, not authoritative
	LastUpdated time.Time // most recent quantity/cost mutation
}

// CostBasis returns the total cost of the position at its average cost.
func (h *Holding) CostBasis() Money { return h.AverageCost.Mul(h.Quantity) }

// InvestmentCriteria is one weighted, free-text research criterion.
type InvestmentCriteria struct {
	ID          string
	Description string
	Weight      float64
	Active      bool
}

// Portfolio aggregates a cash balance and a set of holdings. Its mutating
// methods enforce the funds and share-count invariants; orchestration
// (price lookup, transaction log, persistence) belongs to the Store.
type Portfolio struct {
	ID             string
	Name           string
	Currency       string
	InitialCapital Money // fixed at creation, basis for return calculations
	CurrentCash    Money
	CreatedAt      time.Time
	Criteria       []InvestmentCriteria
	Holdings       map[string]*Holding // keyed by symbol, at most one per symbol
}

// NewPortfolio creates a portfolio with its full capital as cash and no
// holdings. The id is generated here and never changes.
func NewPortfolio(name string, initialCapital Money) *Portfolio {
	return &Portfolio{
		ID:             uuid.NewString(),
		Name:           name,
		Currency:       initialCapital.Currency(),
		InitialCapital: initialCapital,
		CurrentCash:    initialCapital,
		CreatedAt:      time.Now(),
		Holdings:       make(map[string]*Holding),
	}
}

// NormalizeSymbol applies the ticker convention used across the ledger.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Holding returns the position held for symbol, or nil.
func (p *Portfolio) Holding(symbol string) *Holding {
	return p.Holdings[NormalizeSymbol(symbol)]
}

func (p *Portfolio) checkOrder(symbol string, quantity int64, price Money) error {
	if NormalizeSymbol(symbol) == "" {
		return validationf("symbol is empty")
	}
	if quantity <= 0 {
		return validationf("quantity must be positive, got %d", quantity)
	}
	if !price.IsPositive() {
		return validationf("price must be positive, got %s", price)
	}
	if price.Currency() != "" && price.Currency() != p.Currency {
		return validationf("price currency %s does not match portfolio currency %s",
			price.Currency(), p.Currency)
	}
	return nil
}

// AddHolding records a buy of quantity shares at price. The funds check is
// evaluated before any mutation, so a failed buy leaves the portfolio
// untouched. On an additional buy of a held symbol the average cost is
// recomputed as the weighted average of the old and new lots.
//
// The recomputed average is a decimal rounded to shopspring's division
// precision (16 digits), so for non-terminating averages the sum of cash
// and cost bases can drift from the paid totals by at most 1e-15 per buy.
// Cash itself always moves by the exact trade cost.
func (p *Portfolio) AddHolding(symbol string, quantity int64, price Money) error {
	if err := p.checkOrder(symbol, quantity, price); err != nil {
		return err
	}
	symbol = NormalizeSymbol(symbol)

	cost := price.Mul(quantity)
	if cost.GreaterThan(p.CurrentCash) {
		return &InsufficientFundsError{Required: cost, Available: p.CurrentCash}
	}

	h, ok := p.Holdings[symbol]
	if !ok {
		h = &Holding{Symbol: symbol, AverageCost: price}
		p.Holdings[symbol] = h
	} else {
		// newAvg = (oldAvg*oldQty + price*qty) / (oldQty+qty)
		total := h.AverageCost.Mul(h.Quantity).Add(cost)
		h.AverageCost = total.Div(h.Quantity + quantity)
	}
	h.Quantity += quantity
	h.LastUpdated = time.Now()
	p.CurrentCash = p.CurrentCash.Sub(cost)
	return nil
}

// RemoveHolding records a sell of quantity shares at price. Selling the full
// position deletes the holding; a partial sale leaves the average cost
// unchanged. Realized gains are not tracked here.
func (p *Portfolio) RemoveHolding(symbol string, quantity int64, price Money) error {
	if err := p.checkOrder(symbol, quantity, price); err != nil {
		return err
	}
	symbol = NormalizeSymbol(symbol)

	h, ok := p.Holdings[symbol]
	if !ok {
		return fmt.Errorf("%w: %s", ErrHoldingNotFound, symbol)
	}
	if quantity > h.Quantity {
		return &InsufficientSharesError{Symbol: symbol, Requested: quantity, Held: h.Quantity}
	}

	p.CurrentCash = p.CurrentCash.Add(price.Mul(quantity))
	if quantity == h.Quantity {
		// no zero-quantity residue
		delete(p.Holdings, symbol)
		return nil
	}
	h.Quantity -= quantity
	h.LastUpdated = time.Now()
	return nil
}

// AddCriteria appends an investment criterion with a fresh id. The weight is
// accepted as-is; bound enforcement belongs to the caller.
func (p *Portfolio) AddCriteria(description string, weight float64) InvestmentCriteria {
	c := InvestmentCriteria{
		ID:          uuid.NewString(),
		Description: description,
		Weight:      weight,
		Active:      true,
	}
	p.Criteria = append(p.Criteria, c)
	return c
}
