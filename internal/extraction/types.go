package extraction

import "context"

// DocumentType is the classification the model assigns to a document before
// any field extraction happens.
type DocumentType string

const (
	DocTypeInvoice          DocumentType = "invoice"
	DocTypeStatement        DocumentType = "statement"
	DocTypeReminder         DocumentType = "reminder"
	DocTypeCreditNote       DocumentType = "credit_note"
	DocTypePurchaseOrder    DocumentType = "purchase_order"
	DocTypeRemittanceAdvice DocumentType = "remittance_advice"
	DocTypeOther            DocumentType = "other"
)

// HasInvoiceDetails reports whether documents of this type carry extractable
// invoice fields. All other types classify only.
func (d DocumentType) HasInvoiceDetails() bool {
	return d == DocTypeInvoice || d == DocTypeReminder || d == DocTypeCreditNote
}

// LineItem is one invoice line with normalized numeric fields.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// InvoiceRecord holds the extracted fields for a single invoice. Numeric
// fields are always well-formed floats after normalization and date fields
// are ISO 8601 strings; unknown fields are empty strings or zero, never null.
type InvoiceRecord struct {
	Number          string     `json:"number"`
	PONumber        string     `json:"po_number"`
	Amount          float64    `json:"amount"`
	TaxAmount       float64    `json:"tax_amount"`
	CurrencyCode    string     `json:"currency_code"`
	Date            string     `json:"date"`
	DueDate         string     `json:"due_date"`
	PaymentTermDays float64    `json:"payment_term_days"`
	Vendor          string     `json:"vendor"`
	LineItems       []LineItem `json:"line_items"`
}

// ExtractionResult is the typed outcome of one extraction call. Invoices is
// empty when the classification carries no invoice details.
type ExtractionResult struct {
	DocumentType DocumentType    `json:"document_type"`
	Invoices     []InvoiceRecord `json:"invoices"`
}

// Backend sends one instruction plus N base64-encoded JPEG page images to a
// hosted multimodal model and returns the model's raw text answer. The two
// implementations (direct Anthropic API and AWS Bedrock) are interchangeable
// from the caller's perspective.
type Backend interface {
	Invoke(ctx context.Context, prompt string, images []string, maxTokens int) (string, error)
	// Close releases backend resources
	Close() error
}
