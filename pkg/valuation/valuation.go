package valuation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Recommendation strings, exactly as printed in the report.
const (
	Buy     = "Buy"
	DontBuy = "Don't Buy"
)

// ErrNotProfitable marks a ticker rejected because its EPS or growth
// estimate is not positive. It is informational, not a processing failure:
// the ticker simply produces no result row.
var ErrNotProfitable = errors.New("eps or growth rate is not positive")

var (
	seven         = decimal.NewFromInt(7)
	oneHundred    = decimal.NewFromInt(100)
	fourPointFour = decimal.RequireFromString("4.4")
	safetyFactor  = decimal.RequireFromString("0.8")
)

// Quote carries the four figures gathered for one ticker. Growth and
// BondYield are fractions (0.125 for "12.5%"); EPS holds whatever the ratio
// parse of the quote page produced.
type Quote struct {
	Ticker    string
	Price     decimal.Decimal
	EPS       decimal.Decimal
	Growth    decimal.Decimal
	BondYield decimal.Decimal
}

// Result is the outcome of evaluating a fully populated Quote.
type Result struct {
	Ticker         string          `json:"ticker"`
	Price          decimal.Decimal `json:"current_price"`
	IntrinsicValue decimal.Decimal `json:"intrinsic_value"`
	MarginOfSafety decimal.Decimal `json:"margin_of_safety"`
	Recommendation string          `json:"recommendation"`
}

// IntrinsicValue computes eps * (7 + growth*100) * 4.4 / yield, the revised
// Graham formula as applied here, entirely in decimal arithmetic.
func IntrinsicValue(eps, growth, yield decimal.Decimal) (decimal.Decimal, error) {
	if eps.LessThanOrEqual(decimal.Zero) || growth.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, ErrNotProfitable
	}
	if yield.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("bond yield is zero")
	}
	v := eps.Mul(seven.Add(growth.Mul(oneHundred))).Mul(fourPointFour).Div(yield)
	return v, nil
}

// MarginOfSafety discounts an intrinsic value by 20%.
func MarginOfSafety(value decimal.Decimal) decimal.Decimal {
	return value.Mul(safetyFactor)
}

// Evaluate derives the recommendation for a quote: Buy when the current
// price is strictly below the margin of safety. ErrNotProfitable means the
// ticker is dropped without a result; any other error is a data problem.
func Evaluate(q Quote) (*Result, error) {
	value, err := IntrinsicValue(q.EPS, q.Growth, q.BondYield)
	if err != nil {
		return nil, err
	}
	mos := MarginOfSafety(value)
	rec := DontBuy
	if q.Price.LessThan(mos) {
		rec = Buy
	}
	return &Result{
		Ticker:         q.Ticker,
		Price:          q.Price,
		IntrinsicValue: value,
		MarginOfSafety: mos,
		Recommendation: rec,
	}, nil
}
