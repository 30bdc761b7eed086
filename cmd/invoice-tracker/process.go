package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/peterbourgon/ff/v4"

	"github.com/zombor/invoice-tracker/internal/batch"
	"github.com/zombor/invoice-tracker/internal/document"
	"github.com/zombor/invoice-tracker/internal/report"
)

func newProcessCommand(root *rootConfig, parent *ff.FlagSet) *ff.Command {
	fs := ff.NewFlagSet("process").SetParent(parent)
	var (
		results = fs.StringLong("results", "results.txt", "Results file, recreated on each run (empty to skip)")
		csvPath = fs.StringLong("csv", "", "Write a CSV report to this path")
		xlsx    = fs.StringLong("xlsx", "", "Write an XLSX report to this path")
		workers = fs.IntLong("workers", runtime.NumCPU(), "Invoices processed concurrently")
	)

	return &ff.Command{
		Name:      "process",
		Usage:     "invoice-tracker process [FLAGS] <FILE|DIR> ...",
		ShortHelp: "process invoice PDFs or text files and print their totals",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("no invoice files given")
			}

			processor, err := root.processor()
			if err != nil {
				return err
			}
			if *results != "" {
				if err := report.ResetResults(*results); err != nil {
					return err
				}
			}

			files, err := batch.Collect(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no PDF or text invoices found")
			}

			runner := batch.NewRunner(document.NewRouter(), processor, *workers)
			out, err := runner.ProcessFiles(ctx, files)
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range out {
				printResult(os.Stdout, res)
				recordResult(*results, res)
				if res.Err != nil {
					failed++
				}
			}

			if err := writeExports(*csvPath, *xlsx, out); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d invoices could not be processed", failed, len(out))
			}
			return nil
		},
	}
}
