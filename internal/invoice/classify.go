package invoice

// Classifier decides which category a line item is booked under
type Classifier struct {
	labor      *phraseMatcher
	exclusions *phraseMatcher
	shipping   *phraseMatcher
}

// NewClassifier builds a classifier from substring criteria
func NewClassifier(criteria CostCriteria) *Classifier {
	return &Classifier{
		labor:      newPhraseMatcher(criteria.LaborCriteria),
		exclusions: newPhraseMatcher(criteria.LaborExclusions),
		shipping:   newPhraseMatcher(criteria.ShippingCriteria),
	}
}

// IsLabor reports whether line contains a labor criterion and none of the
// labor exclusions
func (c *Classifier) IsLabor(line string) bool {
	if !c.labor.contains(line) {
		return false
	}
	return !c.exclusions.contains(line)
}

// IsShipping reports whether line contains a shipping criterion
func (c *Classifier) IsShipping(line string) bool {
	return c.shipping.contains(line)
}

// Classify picks labor, then shipping, and falls back to material
func (c *Classifier) Classify(line string) Category {
	switch {
	case c.IsLabor(line):
		return CategoryLabor
	case c.IsShipping(line):
		return CategoryShipping
	default:
		return CategoryMaterial
	}
}
