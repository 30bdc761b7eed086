package invoice

import (
	"regexp"
	"strings"
)

const (
	customerPrefix = "Customer: "
	poPrefix       = "PO Number: "
)

var (
	orderNumberPattern = regexp.MustCompile(`S\d{5}`)
	datePattern        = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	customerPattern    = regexp.MustCompile(`Customer: .+`)
	// The PO field runs into the next field on the same line; the match is
	// greedy up to the last "S" of that line, and the "S" is dropped.
	poNumberPattern = regexp.MustCompile(`PO Number: .+S`)
)

// Header holds the singleton fields found on the first page
type Header struct {
	OrderNumber  string
	Date         string
	CustomerName string
	PONumber     string
	PaymentTerms string
	SalesRep     string
}

// ExtractHeader reads the header fields from first-page text. Fields that
// cannot be found are left empty.
func ExtractHeader(text string, cfg *Config) Header {
	h := Header{
		OrderNumber: orderNumberPattern.FindString(text),
		Date:        datePattern.FindString(text),
	}

	if m := customerPattern.FindString(text); m != "" {
		h.CustomerName = strings.TrimSuffix(strings.TrimPrefix(m, customerPrefix), "\r")
	}
	if m := poNumberPattern.FindString(text); m != "" {
		h.PONumber = strings.TrimPrefix(strings.TrimSuffix(m, "S"), poPrefix)
	}

	if cfg != nil {
		h.PaymentTerms = cfg.findPaymentTerms(text)
		h.SalesRep = cfg.findSalesRep(text)
	}
	return h
}

// findPaymentTerms returns the first configured term, in configuration
// order, that occurs anywhere in text
func (c *Config) findPaymentTerms(text string) string {
	if i, ok := c.terms.first(text); ok {
		return c.paymentTerms[i]
	}
	return ""
}

// findSalesRep returns the name of the first configured rep whose code
// occurs anywhere in text
func (c *Config) findSalesRep(text string) string {
	if i, ok := c.reps.first(text); ok {
		return c.salesReps[i].Name
	}
	return ""
}

func (h Header) applyTo(inv *Invoice) {
	inv.OrderNumber = h.OrderNumber
	inv.Date = h.Date
	inv.CustomerName = h.CustomerName
	inv.PONumber = h.PONumber
	inv.PaymentTerms = h.PaymentTerms
	inv.SalesRep = h.SalesRep
}
