package format

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/docufin/invoice-parser/internal/entity"
)

// XLSXBytes renders the record as a single-sheet workbook: the metadata
// block on top, a spacer row, then the line-item table.
func XLSXBytes(rec *entity.InvoiceRecord) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Invoice"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	meta := [][2]any{
		{"Invoice Number", rec.InvoiceNumber},
		{"Date", rec.InvoiceDate},
		{"Vendor", rec.VendorName},
		{"Subtotal", rec.Subtotal},
		{"Tax", rec.TaxAmount},
		{"Total", rec.TotalAmount},
	}
	row := 1
	for _, kv := range meta {
		write(1, row, kv[0])
		write(2, row, kv[1])
		row++
	}
	row++ // spacer

	headers := []string{"Description", "Quantity", "Unit Price", "Line Total"}
	for i, h := range headers {
		write(i+1, row, h)
	}
	row++
	for _, item := range rec.Items {
		write(1, row, item.Description)
		write(2, row, item.Quantity)
		write(3, row, item.UnitPrice)
		write(4, row, item.LineTotal)
		row++
	}

	// Widen the description and metadata columns
	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "D", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX writes the record as an XLSX workbook to path.
func WriteXLSX(rec *entity.InvoiceRecord, path string) error {
	b, err := XLSXBytes(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
