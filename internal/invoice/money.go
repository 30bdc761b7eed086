package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// amountCleaner strips currency symbols, thousands separators and stray spaces
var amountCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// ParseAmount converts a printed amount such as "$1,234.50" into a decimal
// rounded to cents
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := amountCleaner.Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount %q", s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return RoundCents(d), nil
}

// RoundCents rounds to two places, halves away from zero
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatAmount renders an amount with exactly two decimal places
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
