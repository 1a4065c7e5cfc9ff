package extraction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Normalize walks raw decoded extraction JSON and produces a typed
// ExtractionResult. A missing "invoices" key becomes an empty list and
// whatever "document_type" is present is preserved. Every missing or
// malformed field degrades to a documented default (empty string, empty
// list, or 0.0); no error escapes for malformed fields, only for JSON that
// cannot be decoded at all.
func Normalize(raw []byte) (*ExtractionResult, error) {
	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding extraction JSON: %w", err)
	}

	result := &ExtractionResult{
		DocumentType: DocumentType(asString(envelope["document_type"])),
		Invoices:     []InvoiceRecord{},
	}

	items, ok := envelope["invoices"].([]any)
	if !ok {
		return result, nil
	}
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		result.Invoices = append(result.Invoices, normalizeInvoice(obj))
	}
	return result, nil
}

func normalizeInvoice(obj map[string]any) InvoiceRecord {
	rec := InvoiceRecord{
		Number:          asString(obj["number"]),
		PONumber:        asString(obj["po_number"]),
		Amount:          cleanNumeric(obj["amount"]),
		TaxAmount:       cleanNumeric(obj["tax_amount"]),
		CurrencyCode:    asString(obj["currency_code"]),
		Date:            asString(obj["date"]),
		DueDate:         asString(obj["due_date"]),
		PaymentTermDays: cleanNumeric(obj["payment_term_days"]),
		Vendor:          asString(obj["vendor"]),
		LineItems:       []LineItem{},
	}

	items, ok := obj["line_items"].([]any)
	if !ok {
		// missing or non-list line items default to an empty list
		return rec
	}
	for _, item := range items {
		li, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec.LineItems = append(rec.LineItems, LineItem{
			Description: asString(li["description"]),
			Quantity:    cleanNumeric(li["quantity"]),
			UnitPrice:   cleanNumeric(li["unit_price"]),
			Total:       cleanNumeric(li["total"]),
		})
	}
	return rec
}

// cleanNumeric stringifies a value, strips every character that is not a
// digit, '.', or '-', and parses the remainder as a float. Any parse failure
// yields 0.0. The rule is intentionally lossy and locale-naive: it does not
// distinguish thousands separators from decimal separators, which the model's
// own formatting instructions resolve upstream.
func cleanNumeric(v any) float64 {
	if v == nil {
		return 0
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		s = fmt.Sprintf("%v", t)
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// asString coerces a JSON value to a string, with "" for absent values.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
