package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Offsets of the totals lines counted from the end-of-table marker line
const (
	salesTaxOffset    = 2
	listedTotalOffset = 3
)

// Reconciliation summarises how the computed total compares to the
// vendor-listed total
type Reconciliation struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	SalesTax    decimal.Decimal `json:"sales_tax"`
	Total       decimal.Decimal `json:"total"`
	ListedTotal decimal.Decimal `json:"listed_total"`
	Discrepancy decimal.Decimal `json:"discrepancy"`
}

// Balanced reports whether the computed and listed totals agree exactly
func (r Reconciliation) Balanced() bool {
	return r.Discrepancy.IsZero()
}

func reconciliationOf(inv *Invoice) Reconciliation {
	return Reconciliation{
		Subtotal:    inv.Subtotal,
		SalesTax:    inv.SalesTax,
		Total:       inv.Total,
		ListedTotal: inv.ListedTotal,
		Discrepancy: inv.Discrepancy(),
	}
}

// ReadTotals reads sales tax and the listed total from the block that starts
// with the end-of-table marker line. Each amount that cannot be read is
// returned as zero and reported in errs.
func ReadTotals(block []string) (salesTax, listedTotal decimal.Decimal, errs []error) {
	salesTax, err := totalAt(block, salesTaxOffset, "sales tax")
	if err != nil {
		errs = append(errs, err)
	}
	listedTotal, err = totalAt(block, listedTotalOffset, "listed total")
	if err != nil {
		errs = append(errs, err)
	}
	return salesTax, listedTotal, errs
}

func totalAt(block []string, offset int, name string) (decimal.Decimal, error) {
	if offset >= len(block) {
		return decimal.Zero, fmt.Errorf("%w: %s line %d after marker is missing", ErrMalformedTotals, name, offset)
	}
	fields := strings.Fields(block[offset])
	if len(fields) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s line %d after marker is blank", ErrMalformedTotals, name, offset)
	}
	amount, err := ParseAmount(fields[len(fields)-1])
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %w", ErrMalformedTotals, name, err)
	}
	return amount, nil
}

// reconcile applies the totals block to the invoice and finalizes its total
func (s *Scanner) reconcile(inv *Invoice, block []string) {
	tax, listed, errs := ReadTotals(block)
	for _, err := range errs {
		s.logger.Warn("Could not read invoice totals", "error", err)
		inv.warn(err.Error())
	}
	inv.SalesTax = tax
	inv.ListedTotal = listed
	inv.finalize()
	inv.EndReached = true

	s.logger.Debug("Reconciled invoice totals",
		"subtotal", FormatAmount(inv.Subtotal),
		"sales_tax", FormatAmount(inv.SalesTax),
		"total", FormatAmount(inv.Total),
		"listed_total", FormatAmount(inv.ListedTotal),
		"discrepancy", FormatAmount(inv.Discrepancy()),
	)
}
