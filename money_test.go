package aivest

import (
	"encoding/json"
	"testing"
)

func TestMoneyArithmetic(t *testing.T) {
	a := M(100.50, "USD")
	b := M(0.25, "USD")

	if got := a.Add(b); !got.Equal(M(100.75, "USD")) {
		t.Errorf("Add() = %s, want $100.75", got)
	}
	if got := a.Sub(b); !got.Equal(M(100.25, "USD")) {
		t.Errorf("Sub() = %s, want $100.25", got)
	}
	if got := b.Mul(3); !got.Equal(M(0.75, "USD")) {
		t.Errorf("Mul(3) = %s, want $0.75", got)
	}
	if got := a.Div(2); !got.Equal(M(50.25, "USD")) {
		t.Errorf("Div(2) = %s, want $50.25", got)
	}
}

func TestMoneyExactness(t *testing.T) {
	// the classic float trap: 0.1 + 0.2
	got := M(0.1, "USD").Add(M(0.2, "USD"))
	if !got.Equal(M(0.3, "USD")) {
		t.Errorf("0.1 + 0.2 = %s, want exactly $0.30", got)
	}
}

func TestMoneySharesFor(t *testing.T) {
	tests := []struct {
		name   string
		budget Money
		price  Money
		want   int64
	}{
		{"exact multiple", M(1000, "USD"), M(100, "USD"), 10},
		{"floors the remainder", M(1000, "USD"), M(300, "USD"), 3},
		{"budget below price", M(50, "USD"), M(100, "USD"), 0},
		{"zero price", M(1000, "USD"), M(0, "USD"), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.budget.SharesFor(tc.price); got != tc.want {
				t.Errorf("SharesFor() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	in := M(1234.56, "USD")
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	var out Money
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal(%s) failed: %v", data, err)
	}
	if !out.Equal(in) || out.Currency() != "USD" {
		t.Errorf("round trip = %s (%s), want %s (USD)", out, out.Currency(), in)
	}
}
