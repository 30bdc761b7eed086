package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classifier", func() {
	var (
		criteria   CostCriteria
		classifier *Classifier
	)

	BeforeEach(func() {
		criteria = CostCriteria{
			LaborCriteria:    []string{"MF/", "MD/"},
			LaborExclusions:  []string{"MF/RHR", "MF/LHR", "MD/RHR", "MD/LHR"},
			ShippingCriteria: []string{"DELIVERY", "FREIGHT"},
		}
	})

	JustBeforeEach(func() {
		classifier = NewClassifier(criteria)
	})

	Describe("IsLabor", func() {
		It("should be true for a criterion without exclusions", func() {
			Expect(classifier.IsLabor("1 MF/ install")).To(BeTrue())
		})

		It("should be false when an exclusion is also present", func() {
			Expect(classifier.IsLabor("1 MF/RHR door")).To(BeFalse())
		})

		It("should be false without any criterion", func() {
			Expect(classifier.IsLabor("1 BRACKETS METAL")).To(BeFalse())
		})

		It("should be false when only an exclusion-like token appears without a criterion", func() {
			criteria.LaborCriteria = []string{"LABOR"}
			criteria.LaborExclusions = []string{"NO-LABOR", "EXTRA"}
			classifier = NewClassifier(criteria)
			Expect(classifier.IsLabor("1 EXTRA widget")).To(BeFalse())
			Expect(classifier.IsLabor("1 LABOR EXTRA")).To(BeFalse())
		})

		It("should match case-sensitively", func() {
			Expect(classifier.IsLabor("1 mf/ install")).To(BeFalse())
		})
	})

	Describe("IsShipping", func() {
		It("should be true for a shipping criterion", func() {
			Expect(classifier.IsShipping("2 DELIVERY charge")).To(BeTrue())
		})

		It("should be false otherwise", func() {
			Expect(classifier.IsShipping("2 PICKUP")).To(BeFalse())
		})
	})

	Describe("Classify", func() {
		It("should give labor priority over shipping", func() {
			Expect(classifier.Classify("3 MF/ DELIVERY and install")).To(Equal(CategoryLabor))
		})

		It("should classify an excluded labor line with shipping criteria as shipping", func() {
			Expect(classifier.Classify("3 MF/RHR FREIGHT")).To(Equal(CategoryShipping))
		})

		It("should classify an excluded labor line as material", func() {
			Expect(classifier.Classify("3 MF/RHR door")).To(Equal(CategoryMaterial))
		})

		It("should default to material", func() {
			Expect(classifier.Classify("4 ANCHOR BOLT")).To(Equal(CategoryMaterial))
		})
	})

	When("no criteria are configured", func() {
		BeforeEach(func() {
			criteria = CostCriteria{}
		})

		It("should classify everything as material", func() {
			Expect(classifier.Classify("1 MF/ DELIVERY")).To(Equal(CategoryMaterial))
		})
	})

	It("should not change the configuration when classifying", func() {
		cfg := NewConfig(nil, nil, criteria)
		before := cfg.Criteria()
		line := "1 MF/ DELIVERY"
		Expect(cfg.Classifier().IsLabor(line)).To(Equal(cfg.Classifier().IsLabor(line)))
		Expect(cfg.Classifier().IsShipping(line)).To(Equal(cfg.Classifier().IsShipping(line)))
		Expect(cfg.Criteria()).To(Equal(before))
	})

	It("should not be affected by later changes to the caller's slices", func() {
		cfg := NewConfig(nil, nil, criteria)
		criteria.LaborCriteria[0] = "CHANGED"
		Expect(cfg.Criteria().LaborCriteria[0]).To(Equal("MF/"))
		Expect(cfg.Classifier().IsLabor("1 MF/ install")).To(BeTrue())
	})
})
