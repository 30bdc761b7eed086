package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/zombor/invoice-tracker/internal/invoice"
)

// Metrics counts processed invoices
type Metrics struct {
	registry    *prometheus.Registry
	processed   *prometheus.CounterVec
	unbalanced  prometheus.Counter
	lineAmounts *prometheus.CounterVec
}

// NewMetrics registers the ledger collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoice_tracker",
			Name:      "invoices_processed_total",
			Help:      "Invoices processed, by outcome.",
		}, []string{"outcome"}),
		unbalanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoice_tracker",
			Name:      "invoices_unbalanced_total",
			Help:      "Processed invoices whose calculated total differs from the listed total.",
		}),
		lineAmounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoice_tracker",
			Name:      "booked_amount_dollars_total",
			Help:      "Amounts booked per cost category.",
		}, []string{"category"}),
	}
	m.registry.MustRegister(m.processed, m.unbalanced, m.lineAmounts)
	return m
}

// Registry is the registry to expose on /metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observe(rec *Record) {
	m.processed.WithLabelValues("ok").Inc()
	if !rec.Balanced {
		m.unbalanced.Inc()
	}
	add := func(category string, d decimal.Decimal) {
		if d.IsPositive() {
			m.lineAmounts.WithLabelValues(category).Add(d.InexactFloat64())
		}
	}
	add(string(invoice.CategoryLabor), rec.Invoice.LaborCost)
	add(string(invoice.CategoryMaterial), rec.Invoice.MaterialCost)
	add(string(invoice.CategoryShipping), rec.Invoice.ShippingCost)
}

func (m *Metrics) failed(stage string) {
	m.processed.WithLabelValues(stage + "_failed").Inc()
}
