package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zombor/invoice-tracker/internal/batch"
	"github.com/zombor/invoice-tracker/internal/invoice"
	"github.com/zombor/invoice-tracker/internal/report"
)

// printResult writes a one-line summary of a processed file and warns on
// a discrepancy
func printResult(w io.Writer, res batch.Result) {
	if res.Err != nil {
		fmt.Fprintf(w, "%s: error: %v\n", res.Source, res.Err)
		return
	}
	inv := res.Invoice
	fmt.Fprintf(w, "%s: order %s, calculated $%s, listed $%s\n",
		res.Source, inv.OrderNumber, invoice.FormatAmount(inv.Total), invoice.FormatAmount(inv.ListedTotal))
	if !res.Reconciliation.Balanced() {
		fmt.Fprintf(w, "%s: WARNING: discrepancy of $%s between calculated and listed total\n",
			res.Source, invoice.FormatAmount(res.Reconciliation.Discrepancy))
	}
}

// recordResult appends a successful result to the results file
func recordResult(resultsPath string, res batch.Result) {
	if resultsPath == "" || res.Err != nil {
		return
	}
	if err := report.AppendResults(resultsPath, report.Item{Source: res.Source, Invoice: res.Invoice}); err != nil {
		slog.Error("Failed to write results", "path", resultsPath, "error", err)
	}
}

// writeExports writes the optional CSV and XLSX reports
func writeExports(csvPath, xlsxPath string, results []batch.Result) error {
	var entries []report.Item
	for _, res := range results {
		if res.Err == nil {
			entries = append(entries, report.Item{Source: res.Source, Invoice: res.Invoice})
		}
	}

	write := func(path string, fn func(io.Writer, []report.Item) error) error {
		if path == "" {
			return nil
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := fn(f, entries); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return f.Close()
	}

	if err := write(csvPath, report.WriteCSV); err != nil {
		return err
	}
	return write(xlsxPath, report.WriteXLSX)
}
