// Package ledger stores processed invoices and serves them over HTTP.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zombor/invoice-tracker/internal/invoice"
)

// Record is a processed invoice together with the document it was read from
type Record struct {
	ID          string          `json:"id"`
	Filename    string          `json:"filename"`
	Source      string          `json:"source"`
	ContentType string          `json:"content_type"`
	PageCount   int             `json:"page_count"`
	Invoice     invoice.Invoice `json:"invoice"`
	Discrepancy decimal.Decimal `json:"discrepancy"`
	Balanced    bool            `json:"balanced"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
