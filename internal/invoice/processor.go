package invoice

import (
	"fmt"
	"log/slog"
	"strings"
)

// Processor extracts header fields and charges from invoices. A Processor
// holds no per-invoice state and may be shared between goroutines that each
// work on their own invoice.
type Processor struct {
	cfg     *Config
	scanner *Scanner
	logger  *slog.Logger
}

// NewProcessor creates a Processor over cfg. A nil logger means
// slog.Default().
func NewProcessor(cfg *Config, logger *slog.Logger) *Processor {
	if cfg == nil {
		cfg = NewConfig(nil, nil, CostCriteria{})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		cfg:     cfg,
		scanner: NewScanner(NewCostExtractor(), cfg.Classifier(), logger),
		logger:  logger,
	}
}

// PopulateHeader fills the header fields of inv from its first page
func (p *Processor) PopulateHeader(inv *Invoice) error {
	if inv == nil {
		return ErrNilInvoice
	}
	var first string
	if len(inv.pages) > 0 {
		first = inv.pages[0]
	}
	ExtractHeader(first, p.cfg).applyTo(inv)
	return nil
}

// Process populates the header and walks every page of inv, accumulating
// charges and reconciling the totals. A non-zero discrepancy is reported in
// the result, never as an error.
func (p *Processor) Process(inv *Invoice) (Reconciliation, error) {
	if inv == nil {
		return Reconciliation{}, ErrNilInvoice
	}
	if len(inv.pages) == 0 || strings.TrimSpace(inv.pages[0]) == "" {
		return Reconciliation{}, ErrNoPages
	}

	p.logger.Debug("Processing invoice", "pages", len(inv.pages))
	if err := p.PopulateHeader(inv); err != nil {
		return Reconciliation{}, fmt.Errorf("populating header: %w", err)
	}

	state := NewScanState()
	for i, page := range inv.pages {
		if state.Phase == EndReached {
			break
		}
		p.logger.Debug("Processing sales on page", "page", i+1)
		state = p.scanner.ScanPage(state, page, inv)
	}
	p.logger.Debug("Finished processing sales", "rows", state.NextLine-1)

	if !inv.EndReached {
		p.logger.Warn("End of purchase table not found", "order_number", inv.OrderNumber)
		inv.warn("end-of-table marker " + tableEndMarker + " not found")
		inv.finalize()
	}

	result := reconciliationOf(inv)
	if !result.Balanced() {
		p.logger.Warn("Calculated total does not match listed total",
			"order_number", inv.OrderNumber,
			"total", FormatAmount(result.Total),
			"listed_total", FormatAmount(result.ListedTotal),
			"discrepancy", FormatAmount(result.Discrepancy),
		)
	}
	p.logger.Debug("Processed invoice", "invoice", inv)
	return result, nil
}
