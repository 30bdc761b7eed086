// Package batch runs the invoice engine over many files at once.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zombor/invoice-tracker/internal/document"
	"github.com/zombor/invoice-tracker/internal/invoice"
)

// Extensions picked up when collecting or watching files
var supportedExts = map[string]struct{}{
	".pdf": {},
	".txt": {},
}

// Extractor turns a document into page texts
type Extractor interface {
	Extract(data []byte, contentType string) ([]string, error)
}

// Result is the outcome of processing one file
type Result struct {
	Path           string
	Source         string
	Invoice        *invoice.Invoice
	Reconciliation invoice.Reconciliation
	Err            error
}

// Runner processes invoice files with bounded concurrency. Each file is an
// independent invoice; a file's pages are always processed in order.
type Runner struct {
	extractor Extractor
	processor *invoice.Processor
	workers   int
}

// NewRunner creates a Runner. workers below 1 means one file at a time.
func NewRunner(extractor Extractor, processor *invoice.Processor, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		extractor: extractor,
		processor: processor,
		workers:   workers,
	}
}

// Supported reports whether a file is an invoice document the runner handles
func Supported(path string) bool {
	_, ok := supportedExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Collect expands directories into the supported files below them and
// returns the sorted, de-duplicated list. Files named explicitly are kept
// only when supported.
func Collect(paths []string) ([]string, error) {
	seen := map[string]struct{}{}
	var files []string
	add := func(p string) {
		if !Supported(p) {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ProcessFile reads, extracts and processes one invoice file
func (r *Runner) ProcessFile(path string) Result {
	res := Result{Path: path, Source: document.SourceName(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading invoice file: %w", err)
		return res
	}

	pages, err := r.extractor.Extract(data, document.ContentTypeFor(path))
	if err != nil {
		res.Err = fmt.Errorf("extracting invoice text: %w", err)
		return res
	}

	inv := invoice.New(pages)
	rec, err := r.processor.Process(inv)
	if err != nil {
		res.Err = fmt.Errorf("processing invoice: %w", err)
		return res
	}

	res.Invoice = inv
	res.Reconciliation = rec
	return res
}

// ProcessFiles processes every file and returns one result per file in
// input order. Failures of single files are reported in their result; the
// returned error is only set when ctx is cancelled.
func (r *Runner) ProcessFiles(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.ProcessFile(path)
			if err := results[i].Err; err != nil {
				slog.Error("Failed to process invoice", "path", path, "error", err)
			} else {
				slog.Debug("Processed invoice", "path", path, "invoice", results[i].Invoice)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("processing invoices: %w", err)
	}
	return results, nil
}
