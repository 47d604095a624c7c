package parse

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Price parses a scraped price string into an exact decimal. Thousands
// commas and surrounding whitespace are stripped: "1,234.50" -> 1234.50.
func Price(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unable to parse price from %q: %w", raw, err)
	}
	return d, nil
}

// Ratio parses a scraped percentage string into a fraction. Commas and a
// trailing percent sign are stripped and the result is divided by 100:
// "12.5%" -> 0.125, exactly.
func Ratio(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "%"))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unable to parse ratio from %q: %w", raw, err)
	}
	return d.Div(oneHundred), nil
}
