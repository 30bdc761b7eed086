package invoice

// SalesRep maps the code printed on an invoice to the rep's name
type SalesRep struct {
	Code string
	Name string
}

// CostCriteria are the substrings used to classify line items
type CostCriteria struct {
	LaborCriteria    []string `yaml:"labor_criteria" json:"labor_criteria"`
	LaborExclusions  []string `yaml:"labor_exclusions" json:"labor_exclusions"`
	ShippingCriteria []string `yaml:"shipping_criteria" json:"shipping_criteria"`
}

func (c CostCriteria) clone() CostCriteria {
	return CostCriteria{
		LaborCriteria:    append([]string(nil), c.LaborCriteria...),
		LaborExclusions:  append([]string(nil), c.LaborExclusions...),
		ShippingCriteria: append([]string(nil), c.ShippingCriteria...),
	}
}

// Config is the read-only lookup data shared by every invoice processed. It
// is safe for concurrent use.
type Config struct {
	salesReps    []SalesRep
	paymentTerms []string
	criteria     CostCriteria

	reps       *phraseMatcher
	terms      *phraseMatcher
	classifier *Classifier
}

// NewConfig builds a Config. Sales reps and payment terms are searched in
// the order given; the first entry found in the header wins.
func NewConfig(salesReps []SalesRep, paymentTerms []string, criteria CostCriteria) *Config {
	reps := append([]SalesRep(nil), salesReps...)
	codes := make([]string, len(reps))
	for i, r := range reps {
		codes[i] = r.Code
	}
	terms := append([]string(nil), paymentTerms...)
	criteria = criteria.clone()

	return &Config{
		salesReps:    reps,
		paymentTerms: terms,
		criteria:     criteria,
		reps:         newPhraseMatcher(codes),
		terms:        newPhraseMatcher(terms),
		classifier:   NewClassifier(criteria),
	}
}

// SalesReps returns a copy of the configured sales reps
func (c *Config) SalesReps() []SalesRep {
	return append([]SalesRep(nil), c.salesReps...)
}

// PaymentTerms returns a copy of the configured payment terms
func (c *Config) PaymentTerms() []string {
	return append([]string(nil), c.paymentTerms...)
}

// Criteria returns a copy of the cost classification criteria
func (c *Config) Criteria() CostCriteria {
	return c.criteria.clone()
}

// Classifier returns the classifier built from the criteria
func (c *Config) Classifier() *Classifier {
	return c.classifier
}
