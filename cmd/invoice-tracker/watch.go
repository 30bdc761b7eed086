package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/peterbourgon/ff/v4"

	"github.com/zombor/invoice-tracker/internal/batch"
	"github.com/zombor/invoice-tracker/internal/document"
)

func newWatchCommand(root *rootConfig, parent *ff.FlagSet) *ff.Command {
	fs := ff.NewFlagSet("watch").SetParent(parent)
	var (
		dir      = fs.StringLong("dir", "./inbox", "Directory to watch for invoices")
		debounce = fs.DurationLong("debounce", 500*time.Millisecond, "Wait this long after the last write before processing a file")
		initial  = fs.BoolLong("initial-scan", "Also process invoices already in the directory")
		results  = fs.StringLong("results", "results.txt", "Results file to append to (empty to skip)")
	)

	return &ff.Command{
		Name:      "watch",
		Usage:     "invoice-tracker watch [FLAGS]",
		ShortHelp: "process invoices as they are dropped into a directory",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			processor, err := root.processor()
			if err != nil {
				return err
			}

			events, errs, err := batch.Watch(ctx, batch.WatchConfig{
				Dir:         *dir,
				Debounce:    *debounce,
				InitialScan: *initial,
			})
			if err != nil {
				return err
			}
			slog.Info("Watching for invoices", "dir", *dir)

			runner := batch.NewRunner(document.NewRouter(), processor, 1)
			for {
				select {
				case path, ok := <-events:
					if !ok {
						slog.Info("Shutting down...")
						return nil
					}
					res := runner.ProcessFile(path)
					printResult(os.Stdout, res)
					recordResult(*results, res)
				case err, ok := <-errs:
					if ok {
						slog.Warn("Watcher error", "error", err)
					} else {
						errs = nil
					}
				}
			}
		},
	}
}
