package invoice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// UnitCostPattern recognises the priced line of an item sold under one unit
// convention: a quantity, the unit token, and the line amount as the last
// token, e.g. "$ 59.65 10 ea $ 596.50".
type UnitCostPattern struct {
	Unit string
	re   *regexp.Regexp
}

// NewUnitCostPattern builds the pattern for a unit token such as "ea"
func NewUnitCostPattern(unit string) UnitCostPattern {
	expr := fmt.Sprintf(`[0-9](?:.*\s)?%s\s+(?:.*\s)?(\S+)\s*$`, regexp.QuoteMeta(unit))
	return UnitCostPattern{
		Unit: unit,
		re:   regexp.MustCompile(expr),
	}
}

var (
	// QuantityCost matches items sold per unit ("ea")
	QuantityCost = NewUnitCostPattern("ea")
	// HourlyCost matches items billed by the hour ("hr")
	HourlyCost = NewUnitCostPattern("hr")
)

// Find returns the amount on the first line of span that matches the
// pattern, or zero when no line does. Lines whose last token is not an
// amount are skipped.
func (u UnitCostPattern) Find(span string) decimal.Decimal {
	for _, line := range strings.Split(span, "\n") {
		m := u.re.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		amount, err := ParseAmount(m[1])
		if err != nil {
			continue
		}
		return amount
	}
	return decimal.Zero
}

// CostExtractor tries unit patterns in priority order
type CostExtractor struct {
	patterns []UnitCostPattern
}

// NewCostExtractor returns an extractor over the given patterns. With no
// patterns it uses quantity before hourly.
func NewCostExtractor(patterns ...UnitCostPattern) CostExtractor {
	if len(patterns) == 0 {
		patterns = []UnitCostPattern{QuantityCost, HourlyCost}
	}
	return CostExtractor{patterns: patterns}
}

// Extract returns the first non-zero amount found and the unit it was
// billed under. ok is false when the span carries no amount at all.
func (c CostExtractor) Extract(span string) (amount decimal.Decimal, unit string, ok bool) {
	for _, p := range c.patterns {
		if amount = p.Find(span); !amount.IsZero() {
			return amount, p.Unit, true
		}
	}
	return decimal.Zero, "", false
}
