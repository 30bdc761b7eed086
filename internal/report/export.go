package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// WriteCSV writes one CSV row per entry with a header line
func WriteCSV(w io.Writer, entries []Item) error {
	if err := gocsv.Marshal(rows(entries), w); err != nil {
		return fmt.Errorf("marshaling csv: %w", err)
	}
	return nil
}

const sheetName = "Invoices"

var xlsxHeaders = []string{
	"Source",
	"Order Number",
	"Date",
	"Customer",
	"PO Number",
	"Payment Terms",
	"Sales Rep",
	"Labor",
	"Material",
	"Shipping",
	"Subtotal",
	"Sales Tax",
	"Total",
	"Listed Total",
	"Discrepancy",
	"Warnings",
}

// WriteXLSX writes a workbook with one sheet listing every entry
func WriteXLSX(w io.Writer, entries []Item) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	row := 2
	for _, e := range entries {
		inv := e.Invoice
		if inv == nil {
			continue
		}
		values := []any{
			e.Source,
			inv.OrderNumber,
			inv.Date,
			inv.CustomerName,
			inv.PONumber,
			inv.PaymentTerms,
			inv.SalesRep,
			amountCell(inv.LaborCost),
			amountCell(inv.MaterialCost),
			amountCell(inv.ShippingCost),
			amountCell(inv.Subtotal),
			amountCell(inv.SalesTax),
			amountCell(inv.Total),
			amountCell(inv.ListedTotal),
			amountCell(inv.Discrepancy()),
			len(inv.Warnings),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
		row++
	}

	for _, col := range []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 28},
		{"D", "D", 28},
		{"H", "O", 14},
	} {
		if err := f.SetColWidth(sheetName, col.from, col.to, col.width); err != nil {
			return fmt.Errorf("setting width of columns %s:%s: %w", col.from, col.to, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func amountCell(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
