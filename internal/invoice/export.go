package invoice

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/apdesk/invoice-vision/internal/extraction"
)

// WriteCSV renders the line items of every invoice in the result as CSV.
// Numeric fields are already normalized floats, so they format cleanly.
func WriteCSV(result *extraction.ExtractionResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"invoice_number", "description", "quantity", "unit_price", "total"}); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, inv := range result.Invoices {
		for _, item := range inv.LineItems {
			record := []string{
				inv.Number,
				item.Description,
				strconv.FormatFloat(item.Quantity, 'f', -1, 64),
				strconv.FormatFloat(item.UnitPrice, 'f', 2, 64),
				strconv.FormatFloat(item.Total, 'f', 2, 64),
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("writing CSV record: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders the extraction result as an XLSX workbook with one sheet
// of invoice headers and one of line items.
func WriteXLSX(result *extraction.ExtractionResult) ([]byte, error) {
	f := excelize.NewFile()

	const invoiceSheet = "Invoices"
	const itemSheet = "Line Items"

	// The default sheet is renamed rather than left dangling
	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(itemSheet); err != nil {
		return nil, fmt.Errorf("adding sheet: %w", err)
	}

	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	invoiceHeaders := []string{
		"Document Type", "Number", "PO Number", "Vendor", "Date", "Due Date",
		"Payment Term Days", "Currency", "Amount", "Tax Amount",
	}
	for i, h := range invoiceHeaders {
		write(invoiceSheet, i+1, 1, h)
	}

	row := 2
	for _, inv := range result.Invoices {
		write(invoiceSheet, 1, row, string(result.DocumentType))
		write(invoiceSheet, 2, row, inv.Number)
		write(invoiceSheet, 3, row, inv.PONumber)
		write(invoiceSheet, 4, row, inv.Vendor)
		write(invoiceSheet, 5, row, inv.Date)
		write(invoiceSheet, 6, row, inv.DueDate)
		write(invoiceSheet, 7, row, inv.PaymentTermDays)
		write(invoiceSheet, 8, row, inv.CurrencyCode)
		write(invoiceSheet, 9, row, inv.Amount)
		write(invoiceSheet, 10, row, inv.TaxAmount)
		row++
	}

	itemHeaders := []string{"Invoice Number", "Description", "Quantity", "Unit Price", "Total"}
	for i, h := range itemHeaders {
		write(itemSheet, i+1, 1, h)
	}

	row = 2
	for _, inv := range result.Invoices {
		for _, item := range inv.LineItems {
			write(itemSheet, 1, row, inv.Number)
			write(itemSheet, 2, row, item.Description)
			write(itemSheet, 3, row, item.Quantity)
			write(itemSheet, 4, row, item.UnitPrice)
			write(itemSheet, 5, row, item.Total)
			row++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(invoiceSheet, "B", "D", 22)
	_ = f.SetColWidth(itemSheet, "B", "B", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
