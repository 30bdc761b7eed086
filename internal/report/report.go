// Package report renders processed invoices for people and spreadsheets.
package report

import (
	"github.com/zombor/invoice-tracker/internal/invoice"
)

// Item is one processed invoice and the document it came from
type Item struct {
	Source  string
	Invoice *invoice.Invoice
}

// Row is the flat form of an entry used by the CSV and XLSX exports
type Row struct {
	Source       string `csv:"source"`
	OrderNumber  string `csv:"order_number"`
	Date         string `csv:"date"`
	CustomerName string `csv:"customer_name"`
	PONumber     string `csv:"po_number"`
	PaymentTerms string `csv:"payment_terms"`
	SalesRep     string `csv:"sales_rep"`
	LaborCost    string `csv:"labor_cost"`
	MaterialCost string `csv:"material_cost"`
	ShippingCost string `csv:"shipping_cost"`
	Subtotal     string `csv:"subtotal"`
	SalesTax     string `csv:"sales_tax"`
	Total        string `csv:"total"`
	ListedTotal  string `csv:"listed_total"`
	Discrepancy  string `csv:"discrepancy"`
	Warnings     int    `csv:"warnings"`
}

// NewRow flattens an entry
func NewRow(e Item) *Row {
	inv := e.Invoice
	return &Row{
		Source:       e.Source,
		OrderNumber:  inv.OrderNumber,
		Date:         inv.Date,
		CustomerName: inv.CustomerName,
		PONumber:     inv.PONumber,
		PaymentTerms: inv.PaymentTerms,
		SalesRep:     inv.SalesRep,
		LaborCost:    invoice.FormatAmount(inv.LaborCost),
		MaterialCost: invoice.FormatAmount(inv.MaterialCost),
		ShippingCost: invoice.FormatAmount(inv.ShippingCost),
		Subtotal:     invoice.FormatAmount(inv.Subtotal),
		SalesTax:     invoice.FormatAmount(inv.SalesTax),
		Total:        invoice.FormatAmount(inv.Total),
		ListedTotal:  invoice.FormatAmount(inv.ListedTotal),
		Discrepancy:  invoice.FormatAmount(inv.Discrepancy()),
		Warnings:     len(inv.Warnings),
	}
}

func rows(entries []Item) []*Row {
	out := make([]*Row, 0, len(entries))
	for _, e := range entries {
		if e.Invoice == nil {
			continue
		}
		out = append(out, NewRow(e))
	}
	return out
}
