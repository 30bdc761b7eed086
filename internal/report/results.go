package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zombor/invoice-tracker/internal/invoice"
)

const separator = "***********************************"

// WriteResults writes the results block for one invoice
func WriteResults(w io.Writer, e Item) error {
	inv := e.Invoice
	if inv == nil {
		return invoice.ErrNilInvoice
	}
	money := invoice.FormatAmount

	var b strings.Builder
	b.WriteString(separator + "\n")
	b.WriteString("Processed Invoice Results:\n")
	if e.Source != "" {
		fmt.Fprintf(&b, "Source File:      %s\n", e.Source)
	}
	fmt.Fprintf(&b, "Customer Name:    %s\n", inv.CustomerName)
	fmt.Fprintf(&b, "Invoice Date:     %s\n", inv.Date)
	fmt.Fprintf(&b, "Order Number:     %s\n", inv.OrderNumber)
	fmt.Fprintf(&b, "PO Number:        %s\n", inv.PONumber)
	fmt.Fprintf(&b, "Payment Terms:    %s\n", inv.PaymentTerms)
	fmt.Fprintf(&b, "Sales Rep:        %s\n", inv.SalesRep)
	fmt.Fprintf(&b, "Labor Cost:       $%s\n", money(inv.LaborCost))
	fmt.Fprintf(&b, "Material Cost:    $%s\n", money(inv.MaterialCost))
	fmt.Fprintf(&b, "Shipping Cost:    $%s\n", money(inv.ShippingCost))
	fmt.Fprintf(&b, "Subtotal:         $%s\n", money(inv.Subtotal))
	fmt.Fprintf(&b, "Sales Tax:        $%s\n", money(inv.SalesTax))
	fmt.Fprintf(&b, "Calculated Total: $%s\n", money(inv.Total))
	fmt.Fprintf(&b, "Listed Total:     $%s\n", money(inv.ListedTotal))
	fmt.Fprintf(&b, "Discrepancy:      $%s\n", money(inv.Discrepancy()))
	for _, warning := range inv.Warnings {
		fmt.Fprintf(&b, "Warning:          %s\n", warning)
	}
	b.WriteString(separator + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// AppendResults appends the results block for one invoice to the file at path
func AppendResults(path string, e Item) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening results file: %w", err)
	}
	if err := WriteResults(f, e); err != nil {
		f.Close()
		return fmt.Errorf("writing results: %w", err)
	}
	return f.Close()
}

// ResetResults removes the results file left by a previous run. The
// directory it lives in must exist.
func ResetResults(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("results file directory %s does not exist: %w", dir, err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing results file: %w", err)
	}
	return nil
}
