package invoice

import (
	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var _ = Describe("UnitCostPattern", func() {
	DescribeTable("quantity lines",
		func(span, want string) {
			Expect(QuantityCost.Find(span).Equal(dec(want))).To(BeTrue())
		},
		Entry("no space before unit", "$59.65 1ea $ 59.65", "59.65"),
		Entry("extra spaces", "$ 59.65 1 ea $ 59.65", "59.65"),
		Entry("two digit quantity", "$ 59.65 10 ea $ 596.50", "596.50"),
		Entry("four digit quantity", "$ 59.65 1000 ea $ 59650.00", "59650.00"),
		Entry("thousands separator", "$ 59.65 1000 ea $ 59,650.00", "59650.00"),
		Entry("description between row number and unit", "1 MF/ install ea $10.00", "10.00"),
		Entry("first matching line wins", "2 BRACKET\n$ 1.00 3 ea $ 3.00\n$ 9.00 1 ea $ 9.00", "3.00"),
	)

	DescribeTable("lines without a quantity amount",
		func(span string) {
			Expect(QuantityCost.Find(span).IsZero()).To(BeTrue())
		},
		Entry("no unit", "2 anchor bolt no quantity cost"),
		Entry("unit inside a word", "3 area seal 12.00"),
		Entry("unit without amount", "4 BOLTS 2 ea"),
		Entry("empty span", ""),
	)

	It("should skip a matching line whose last token is not an amount", func() {
		span := "1 LIFT 2 ea see note\n$ 4.00 2 ea $ 8.00"
		Expect(QuantityCost.Find(span).Equal(dec("8.00"))).To(BeTrue())
	})

	It("should recognise hourly lines", func() {
		Expect(HourlyCost.Find("3 MF/ INSTALL 2 hr $150.00").Equal(dec("150.00"))).To(BeTrue())
		Expect(HourlyCost.Find("3 MF/ INSTALL 2 ea $150.00").IsZero()).To(BeTrue())
	})

	It("should support additional unit conventions", func() {
		perFoot := NewUnitCostPattern("ft")
		Expect(perFoot.Find("5 RAIL 12 ft $ 36.00").Equal(dec("36.00"))).To(BeTrue())
	})
})

var _ = Describe("CostExtractor", func() {
	var extractor CostExtractor

	BeforeEach(func() {
		extractor = NewCostExtractor()
	})

	It("should prefer the quantity cost when both conventions appear", func() {
		span := "4 MF/ SERVICE CALL\n$ 95.00 2 hr $ 190.00\n$ 45.00 1 ea $ 45.00"
		amount, unit, ok := extractor.Extract(span)
		Expect(ok).To(BeTrue())
		Expect(unit).To(Equal("ea"))
		Expect(amount.Equal(dec("45.00"))).To(BeTrue())
	})

	It("should fall back to the hourly cost", func() {
		amount, unit, ok := extractor.Extract("5 TRAVEL 2 hr $ 80.00")
		Expect(ok).To(BeTrue())
		Expect(unit).To(Equal("hr"))
		Expect(amount.Equal(dec("80.00"))).To(BeTrue())
	})

	It("should fall back to the hourly cost when the quantity cost is zero", func() {
		amount, unit, ok := extractor.Extract("6 WARRANTY 1 ea $0.00\n1 hr $ 60.00")
		Expect(ok).To(BeTrue())
		Expect(unit).To(Equal("hr"))
		Expect(amount.Equal(dec("60.00"))).To(BeTrue())
	})

	It("should report no cost for narrative rows", func() {
		amount, unit, ok := extractor.Extract("7 NOTE: INSTALL PER DRAWING")
		Expect(ok).To(BeFalse())
		Expect(unit).To(BeEmpty())
		Expect(amount.IsZero()).To(BeTrue())
	})
})
