package aivest

import "testing"

func TestCalculateTotalValueEmptyPortfolio(t *testing.T) {
	p := newTestPortfolio(t, 10000)

	// no price map needed at all
	m := p.CalculateTotalValue(nil)

	if !m.TotalValue.Equal(M(10000, "USD")) {
		t.Errorf("totalValue = %s, want $10,000.00", m.TotalValue)
	}
	if !m.TotalReturns.IsZero() {
		t.Errorf("totalReturns = %s, want zero", m.TotalReturns)
	}
	if m.PercentageReturns != 0 {
		t.Errorf("percentageReturns = %s, want 0", m.PercentageReturns)
	}
}

func TestCalculateTotalValueWithPrices(t *testing.T) {
	p := newTestPortfolio(t, 10000)
	if err := p.AddHolding("SYM", 10, M(100, "USD")); err != nil {
		t.Fatal(err)
	}
	// cash is now 9000

	m := p.CalculateTotalValue(map[string]Money{"SYM": M(120, "USD")})

	if !m.UnrealizedGains.Equal(M(200, "USD")) {
		t.Errorf("unrealizedGains = %s, want $200.00", m.UnrealizedGains)
	}
	if want := M(9000+1200, "USD"); !m.TotalValue.Equal(want) {
		t.Errorf("totalValue = %s, want %s", m.TotalValue, want)
	}
	if !m.TotalReturns.Equal(M(200, "USD")) {
		t.Errorf("totalReturns = %s, want $200.00", m.TotalReturns)
	}
	if m.PercentageReturns != 2 {
		t.Errorf("percentageReturns = %s, want 2.00%%", m.PercentageReturns)
	}
	if !m.RealizedGains.IsZero() {
		t.Errorf("realizedGains = %s, want zero", m.RealizedGains)
	}

	// side effect: the holding's observed price was refreshed
	if got := p.Holding("SYM").Price; !got.Equal(M(120, "USD")) {
		t.Errorf("holding price = %s, want $120.00", got)
	}
}

func TestCalculateTotalValueMissingPriceFallsBack(t *testing.T) {
	p := newTestPortfolio(t, 10000)
	if err := p.AddHolding("SYM", 10, M(100, "USD")); err != nil {
		t.Fatal(err)
	}

	m := p.CalculateTotalValue(map[string]Money{"OTHER": M(1, "USD")})

	// valued at average cost: no unrealized gain contribution
	if !m.UnrealizedGains.IsZero() {
		t.Errorf("unrealizedGains = %s, want zero", m.UnrealizedGains)
	}
	if want := M(10000, "USD"); !m.TotalValue.Equal(want) {
		t.Errorf("totalValue = %s, want %s", m.TotalValue, want)
	}
	if got := p.Holding("SYM").Price; !got.Equal(M(100, "USD")) {
		t.Errorf("holding price = %s, want fallback to average cost", got)
	}
}

func TestCalculateTotalValueZeroCapital(t *testing.T) {
	// not expected given creation validation, but must not crash
	p := &Portfolio{
		Currency:       "USD",
		InitialCapital: M(0, "USD"),
		CurrentCash:    M(0, "USD"),
		Holdings:       map[string]*Holding{},
	}
	m := p.CalculateTotalValue(nil)
	if m.PercentageReturns != 0 {
		t.Errorf("percentageReturns = %s, want 0", m.PercentageReturns)
	}
}
