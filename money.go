package aivest

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Money represents an exact monetary value in a single currency.
//
// All ledger arithmetic goes through Money so that the cash conservation
// invariant holds without floating point drift.
type Money struct {
	value decimal.Decimal
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	c := m.currency()
	dec := m.value.Shift(int32(c.Fraction))
	return c.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }

// Mul returns the money value multiplied by a share count.
func (m Money) Mul(n int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(n)), cur: m.cur}
}

// Div returns the money value divided by a share count.
func (m Money) Div(n int64) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(n)), cur: m.cur}
}

// SharesFor returns how many whole shares this amount buys at the given
// per-share price, flooring the result.
func (m Money) SharesFor(price Money) int64 {
	if price.value.IsZero() {
		return 0
	}
	return m.value.Div(price.value).IntPart()
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// AsFloat returns an inexact float64 view, for display ratios only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// MarshalJSON implements the json.Marshaler interface for Money.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.value)
	w.Append("currency", m.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Money.
func (m *Money) UnmarshalJSON(data []byte) error {
	var js struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &js); err != nil {
		return fmt.Errorf("invalid money value %q: %w", string(data), err)
	}
	m.value = js.Amount
	m.cur = js.Currency
	return nil
}

// Percent is a ratio expressed in percent (e.g. 12.5 for +12.5%).
type Percent float64

func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }
