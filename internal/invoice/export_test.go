package invoice

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/apdesk/invoice-vision/internal/extraction"
)

var _ = Describe("export", func() {
	var result *extraction.ExtractionResult

	BeforeEach(func() {
		result = &extraction.ExtractionResult{
			DocumentType: extraction.DocTypeInvoice,
			Invoices: []extraction.InvoiceRecord{
				{
					Number:          "INV01",
					PONumber:        "PO123",
					Amount:          100.0,
					TaxAmount:       10.0,
					CurrencyCode:    "GBP",
					Date:            "2024-11-09",
					DueDate:         "2024-12-09",
					PaymentTermDays: 30,
					Vendor:          "ABC LTD",
					LineItems: []extraction.LineItem{
						{Description: "Product A", Quantity: 2, UnitPrice: 45, Total: 90},
						{Description: "Product B", Quantity: 1, UnitPrice: 10, Total: 10},
					},
				},
			},
		}
	})

	Describe("WriteCSV", func() {
		It("writes one row per line item", func() {
			data, err := WriteCSV(result)
			Expect(err).NotTo(HaveOccurred())

			csv := string(data)
			Expect(csv).To(ContainSubstring("invoice_number,description,quantity,unit_price,total\n"))
			Expect(csv).To(ContainSubstring("INV01,Product A,2,45.00,90.00\n"))
			Expect(csv).To(ContainSubstring("INV01,Product B,1,10.00,10.00\n"))
		})

		It("produces only the header for a result without invoices", func() {
			data, err := WriteCSV(&extraction.ExtractionResult{DocumentType: extraction.DocTypeStatement})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("invoice_number,description,quantity,unit_price,total\n"))
		})
	})

	Describe("WriteXLSX", func() {
		It("writes invoice headers and line items to separate sheets", func() {
			data, err := WriteXLSX(result)
			Expect(err).NotTo(HaveOccurred())

			f, err := excelize.OpenReader(bytes.NewReader(data))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			number, err := f.GetCellValue("Invoices", "B2")
			Expect(err).NotTo(HaveOccurred())
			Expect(number).To(Equal("INV01"))

			vendor, err := f.GetCellValue("Invoices", "D2")
			Expect(err).NotTo(HaveOccurred())
			Expect(vendor).To(Equal("ABC LTD"))

			amount, err := f.GetCellValue("Invoices", "I2")
			Expect(err).NotTo(HaveOccurred())
			Expect(amount).To(Equal("100"))

			desc, err := f.GetCellValue("Line Items", "B3")
			Expect(err).NotTo(HaveOccurred())
			Expect(desc).To(Equal("Product B"))
		})
	})
})
