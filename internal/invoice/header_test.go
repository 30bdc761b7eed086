package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractHeader", func() {
	var (
		cfg    *Config
		text   string
		header Header
	)

	BeforeEach(func() {
		cfg = NewConfig(
			[]SalesRep{{Code: "JDOE", Name: "John Doe"}, {Code: "ASMITH", Name: "Alice Smith"}},
			[]string{"Net 30", "COD", "Due on receipt"},
			CostCriteria{},
		)
		text = "Sales Order S12345\n" +
			"Date 07/28/2025\n" +
			"Customer: Acme Corp\n" +
			"PO Number: N-4471Ship Via\n" +
			"Terms COD Net 30 Rep ASMITH JDOE\n"
	})

	JustBeforeEach(func() {
		header = ExtractHeader(text, cfg)
	})

	When("all fields are present", func() {
		It("should find the order number", func() {
			Expect(header.OrderNumber).To(Equal("S12345"))
		})

		It("should find the date", func() {
			Expect(header.Date).To(Equal("07/28/2025"))
		})

		It("should strip the customer prefix", func() {
			Expect(header.CustomerName).To(Equal("Acme Corp"))
		})

		It("should strip the PO prefix and the trailing S", func() {
			Expect(header.PONumber).To(Equal("N-4471"))
		})

		It("should prefer payment terms in configuration order", func() {
			Expect(header.PaymentTerms).To(Equal("Net 30"))
		})

		It("should prefer sales reps in configuration order", func() {
			Expect(header.SalesRep).To(Equal("John Doe"))
		})
	})

	When("the customer line ends with a carriage return", func() {
		BeforeEach(func() {
			text = "Customer: Acme Corp\r\nS12345"
		})

		It("should not keep the carriage return", func() {
			Expect(header.CustomerName).To(Equal("Acme Corp"))
		})
	})

	When("the PO number field is followed by more text", func() {
		BeforeEach(func() {
			text = "PO Number: 88123 Ship Via UPS\nCustomer: X"
		})

		It("should cut at the last S on the line", func() {
			Expect(header.PONumber).To(Equal("88123 Ship Via UP"))
		})
	})

	When("nothing matches", func() {
		BeforeEach(func() {
			text = "Order s1234 dated 7/28/25\nCustomer Acme\nPO Numberr: 1S"
		})

		It("should leave every field empty", func() {
			Expect(header).To(Equal(Header{}))
		})
	})

	When("there is no configuration", func() {
		BeforeEach(func() {
			cfg = nil
		})

		It("should still read the fixed-pattern fields", func() {
			Expect(header.OrderNumber).To(Equal("S12345"))
			Expect(header.PaymentTerms).To(BeEmpty())
			Expect(header.SalesRep).To(BeEmpty())
		})
	})
})

var _ = Describe("Processor.PopulateHeader", func() {
	It("should fail fast on a nil invoice", func() {
		p := NewProcessor(NewConfig(nil, nil, CostCriteria{}), nil)
		Expect(p.PopulateHeader(nil)).To(MatchError(ErrNilInvoice))
	})

	It("should populate the invoice from the first page only", func() {
		p := NewProcessor(NewConfig(nil, []string{"Net 30"}, CostCriteria{}), nil)
		inv := New([]string{"Customer: Acme Corp\nS12345\n", "Customer: Other\nNet 30"})
		Expect(p.PopulateHeader(inv)).To(Succeed())
		Expect(inv.CustomerName).To(Equal("Acme Corp"))
		Expect(inv.OrderNumber).To(Equal("S12345"))
		Expect(inv.PaymentTerms).To(BeEmpty())
	})
})
