package aivest

// PerformanceMetrics is the aggregate valuation of a portfolio against its
// initial capital.
type PerformanceMetrics struct {
	TotalValue        Money // cash plus market value of all holdings
	TotalReturns      Money
	PercentageReturns Percent
	UnrealizedGains   Money
	RealizedGains     Money // always zero: realized P&L is not tracked
}

// CalculateTotalValue converts the current holdings and a symbol→price map
// into aggregate performance metrics.
//
// A symbol missing from the price map falls back to the holding's average
// cost, i.e. it contributes no unrealized gain. As a deliberate side effect
// each holding's Price field is refreshed with the price used, so this is
// not a pure function.
func (p *Portfolio) CalculateTotalValue(prices map[string]Money) PerformanceMetrics {
	totalValue := p.CurrentCash
	unrealized := M(0, p.Currency)

	for symbol, h := range p.Holdings {
		price, ok := prices[symbol]
		if !ok {
			price = h.AverageCost
		}
		h.Price = price

		value := price.Mul(h.Quantity)
		totalValue = totalValue.Add(value)
		unrealized = unrealized.Add(value.Sub(h.CostBasis()))
	}

	returns := totalValue.Sub(p.InitialCapital)
	var pct Percent
	if !p.InitialCapital.IsZero() {
		pct = Percent(returns.AsFloat() / p.InitialCapital.AsFloat() * 100)
	}

	return PerformanceMetrics{
		TotalValue:        totalValue,
		TotalReturns:      returns,
		PercentageReturns: pct,
		UnrealizedGains:   unrealized,
		RealizedGains:     M(0, p.Currency),
	}
}
