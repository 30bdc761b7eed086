// Package invoice extracts line-item charges from the per-page text of vendor
// sales invoices and reconciles the computed total against the printed one.
package invoice

import (
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
)

var (
	// ErrNilInvoice is returned when a nil invoice is handed to the processor
	ErrNilInvoice = errors.New("cannot parse a nil invoice")

	// ErrNoPages is returned when an invoice has no page text to work from
	ErrNoPages = errors.New("invoice has no page contents")

	// ErrMalformedTotals marks a totals block whose amounts could not be read
	ErrMalformedTotals = errors.New("malformed totals block")
)

// Category is the kind of charge a line item is booked under
type Category string

const (
	CategoryLabor    Category = "labor"
	CategoryShipping Category = "shipping"
	CategoryMaterial Category = "material"
)

// Invoice holds the header fields and accumulated charges of one document
type Invoice struct {
	OrderNumber  string `json:"order_number"`
	Date         string `json:"date"`
	CustomerName string `json:"customer_name"`
	PONumber     string `json:"po_number"`
	PaymentTerms string `json:"payment_terms"`
	SalesRep     string `json:"sales_rep"`

	LaborCost    decimal.Decimal `json:"labor_cost"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	SalesTax     decimal.Decimal `json:"sales_tax"`
	Total        decimal.Decimal `json:"total"`
	ListedTotal  decimal.Decimal `json:"listed_total"`

	// EndReached is set once the end-of-table marker has been processed
	EndReached bool `json:"end_reached"`

	// Warnings collects recoverable anomalies found while processing
	Warnings []string `json:"warnings,omitempty"`

	pages []string
}

// New creates an empty invoice over the given page texts. The pages are
// copied and never modified afterwards.
func New(pages []string) *Invoice {
	return &Invoice{
		pages: append([]string(nil), pages...),
	}
}

// PageContents returns a copy of the page texts
func (inv *Invoice) PageContents() []string {
	return append([]string(nil), inv.pages...)
}

// PageCount returns the number of pages
func (inv *Invoice) PageCount() int {
	return len(inv.pages)
}

// Discrepancy is the computed total minus the total printed on the invoice
func (inv *Invoice) Discrepancy() decimal.Decimal {
	return inv.Total.Sub(inv.ListedTotal)
}

// apply books one line item amount and keeps the subtotal in step
func (inv *Invoice) apply(category Category, amount decimal.Decimal) {
	switch category {
	case CategoryLabor:
		inv.LaborCost = inv.LaborCost.Add(amount)
	case CategoryShipping:
		inv.ShippingCost = inv.ShippingCost.Add(amount)
	default:
		inv.MaterialCost = inv.MaterialCost.Add(amount)
	}
	inv.Subtotal = inv.LaborCost.Add(inv.MaterialCost).Add(inv.ShippingCost)
}

func (inv *Invoice) finalize() {
	inv.Total = RoundCents(inv.Subtotal.Add(inv.SalesTax))
}

func (inv *Invoice) warn(msg string) {
	inv.Warnings = append(inv.Warnings, msg)
}

// LogValue implements slog.LogValuer so a whole invoice can be dumped as a group
func (inv *Invoice) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("customer", inv.CustomerName),
		slog.String("date", inv.Date),
		slog.String("order_number", inv.OrderNumber),
		slog.String("po_number", inv.PONumber),
		slog.String("payment_terms", inv.PaymentTerms),
		slog.String("sales_rep", inv.SalesRep),
		slog.String("labor_cost", FormatAmount(inv.LaborCost)),
		slog.String("material_cost", FormatAmount(inv.MaterialCost)),
		slog.String("shipping_cost", FormatAmount(inv.ShippingCost)),
		slog.String("subtotal", FormatAmount(inv.Subtotal)),
		slog.String("sales_tax", FormatAmount(inv.SalesTax)),
		slog.String("total", FormatAmount(inv.Total)),
		slog.String("listed_total", FormatAmount(inv.ListedTotal)),
	)
}
