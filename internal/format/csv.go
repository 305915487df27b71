package format

import (
	"fmt"
	"os"
	"strings"

	"github.com/docufin/invoice-parser/internal/decode"
	"github.com/docufin/invoice-parser/internal/entity"
	"github.com/docufin/invoice-parser/internal/extract"
)

// CSVString renders the two-section CSV document: an "Invoice Metadata"
// key/value block, a blank line, then the "Line Items" table. Amounts are
// formatted to two decimal places; descriptions are quoted when they contain
// a comma, quote, or newline, so the document round-trips.
func CSVString(rec *entity.InvoiceRecord) string {
	var b strings.Builder
	b.WriteString("Invoice Metadata\n")
	fmt.Fprintf(&b, "Invoice Number,%s\n", escapeCSV(rec.InvoiceNumber))
	fmt.Fprintf(&b, "Date,%s\n", escapeCSV(rec.InvoiceDate))
	fmt.Fprintf(&b, "Vendor,%s\n", escapeCSV(rec.VendorName))
	fmt.Fprintf(&b, "Subtotal,%.2f\n", rec.Subtotal)
	fmt.Fprintf(&b, "Tax,%.2f\n", rec.TaxAmount)
	fmt.Fprintf(&b, "Total,%.2f\n", rec.TotalAmount)
	b.WriteString("\n")

	b.WriteString("Line Items\n")
	b.WriteString("Description,Quantity,Unit Price,Line Total\n")
	for _, item := range rec.Items {
		fmt.Fprintf(&b, "%s,%d,%.2f,%.2f\n",
			escapeCSV(item.Description), item.Quantity, item.UnitPrice, item.LineTotal)
	}
	return b.String()
}

// WriteCSV writes the record as CSV to path.
func WriteCSV(rec *entity.InvoiceRecord, path string) error {
	return os.WriteFile(path, []byte(CSVString(rec)), 0o644)
}

// ReadLineItemsCSV recovers the "Line Items" section from a document
// produced by CSVString. The metadata block never has four cells, so the
// table detector finds the section header and parses only item rows. This
// is the reverse half of the CSV round-trip.
func ReadLineItemsCSV(data string) ([]entity.LineItem, error) {
	rows, err := decode.CSVRowsFromBytes([]byte(data))
	if err != nil {
		return nil, err
	}
	return extract.LineItemsFromRows(rows), nil
}

// escapeCSV quotes value when it contains a comma, quote, or newline,
// doubling embedded quotes.
func escapeCSV(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
