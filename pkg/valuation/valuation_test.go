package valuation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return v
}

func TestIntrinsicValue(t *testing.T) {
	got, err := IntrinsicValue(d(t, "2"), d(t, "0.10"), d(t, "4.4"))
	if err != nil {
		t.Fatalf("IntrinsicValue: %v", err)
	}
	if !got.Equal(d(t, "34")) {
		t.Errorf("IntrinsicValue(2, 0.10, 4.4) = %s, want 34", got)
	}
}

func TestIntrinsicValueExact(t *testing.T) {
	// 1.1 * (7 + 13) * 4.4 / 2.2 = 44, with no rounding anywhere.
	got, err := IntrinsicValue(d(t, "1.1"), d(t, "0.13"), d(t, "2.2"))
	if err != nil {
		t.Fatalf("IntrinsicValue: %v", err)
	}
	if !got.Equal(d(t, "44")) {
		t.Errorf("IntrinsicValue(1.1, 0.13, 2.2) = %s, want 44", got)
	}
}

func TestMarginOfSafety(t *testing.T) {
	if got := MarginOfSafety(d(t, "34")); !got.Equal(d(t, "27.2")) {
		t.Errorf("MarginOfSafety(34) = %s, want 27.2", got)
	}
}

func TestIntrinsicValueRejectsNonPositive(t *testing.T) {
	cases := []struct {
		eps    string
		growth string
	}{
		{"0", "0.10"},
		{"-1.5", "0.10"},
		{"2", "0"},
		{"2", "-0.05"},
	}
	for _, c := range cases {
		_, err := IntrinsicValue(d(t, c.eps), d(t, c.growth), d(t, "4.4"))
		if !errors.Is(err, ErrNotProfitable) {
			t.Errorf("IntrinsicValue(eps=%s, growth=%s): want ErrNotProfitable, got %v", c.eps, c.growth, err)
		}
	}
}

func TestIntrinsicValueZeroYield(t *testing.T) {
	_, err := IntrinsicValue(d(t, "2"), d(t, "0.10"), d(t, "0"))
	if err == nil {
		t.Fatal("expected error for zero yield")
	}
	if errors.Is(err, ErrNotProfitable) {
		t.Fatalf("zero yield must not report ErrNotProfitable, got %v", err)
	}
}

func TestEvaluateRecommendation(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{"20", Buy},
		{"30", DontBuy},
		{"27.2", DontBuy}, // strictly-below comparison
	}
	for _, tt := range tests {
		r, err := Evaluate(Quote{
			Ticker:    "TEST",
			Price:     d(t, tt.price),
			EPS:       d(t, "2"),
			Growth:    d(t, "0.10"),
			BondYield: d(t, "4.4"),
		})
		if err != nil {
			t.Fatalf("Evaluate(price=%s): %v", tt.price, err)
		}
		if r.Recommendation != tt.want {
			t.Errorf("price %s: recommendation = %q, want %q", tt.price, r.Recommendation, tt.want)
		}
		if !r.IntrinsicValue.Equal(d(t, "34")) || !r.MarginOfSafety.Equal(d(t, "27.2")) {
			t.Errorf("price %s: value/mos = %s/%s, want 34/27.2", tt.price, r.IntrinsicValue, r.MarginOfSafety)
		}
	}
}

func TestEvaluateNotProfitable(t *testing.T) {
	_, err := Evaluate(Quote{
		Ticker:    "LOSS",
		Price:     d(t, "10"),
		EPS:       d(t, "-0.5"),
		Growth:    d(t, "0.10"),
		BondYield: d(t, "4.4"),
	})
	if !errors.Is(err, ErrNotProfitable) {
		t.Fatalf("want ErrNotProfitable, got %v", err)
	}
}
