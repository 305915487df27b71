package extract

import (
	"strings"

	"github.com/docufin/invoice-parser/internal/amount"
	"github.com/docufin/invoice-parser/internal/entity"
)

// metadataRowLimit caps how many leading rows are scanned for key/value
// metadata pairs.
const metadataRowLimit = 10

// MetadataAlias maps several label spellings, bilingual variants included,
// to one field assignment.
type MetadataAlias struct {
	Keys   []string
	Assign func(rec *entity.InvoiceRecord, value string)
}

// metadataAliases is the alias table for the CSV-path metadata scan. The
// table itself is unordered — keys are exact-match after normalization — but
// rows are scanned once in order, so the last matching row for a key wins.
var metadataAliases = []MetadataAlias{
	{
		Keys: []string{"invoice number", "invoice #", "numéro de facture"},
		Assign: func(rec *entity.InvoiceRecord, v string) {
			rec.InvoiceNumber = v
		},
	},
	{
		Keys: []string{"date", "invoice date", "date de facture"},
		Assign: func(rec *entity.InvoiceRecord, v string) {
			rec.InvoiceDate = v
		},
	},
	{
		Keys: []string{"vendor", "vendor name", "fournisseur"},
		Assign: func(rec *entity.InvoiceRecord, v string) {
			rec.VendorName = v
		},
	},
	{
		Keys: []string{"subtotal", "sous-total"},
		Assign: func(rec *entity.InvoiceRecord, v string) {
			rec.Subtotal = amount.Normalize(v)
		},
	},
	{
		Keys: []string{"tax", "taxes", "gst", "hst"},
		Assign: func(rec *entity.InvoiceRecord, v string) {
			rec.TaxAmount = amount.Normalize(v)
		},
	},
	{
		Keys: []string{"total", "grand total"},
		Assign: func(rec *entity.InvoiceRecord, v string) {
			rec.TotalAmount = amount.Normalize(v)
		},
	},
}

func lookupAlias(key string) func(*entity.InvoiceRecord, string) {
	for _, a := range metadataAliases {
		for _, k := range a.Keys {
			if k == key {
				return a.Assign
			}
		}
	}
	return nil
}

// MetadataFromRows interprets the leading rows as key/value metadata pairs:
// cell 0 is trimmed and lowercased, then looked up in the alias table; cell
// 1 is the verbatim trimmed value (amounts go through the normalizer).
// Unrecognized keys and short rows are ignored without error.
func MetadataFromRows(rows [][]string, rec *entity.InvoiceRecord) {
	limit := min(metadataRowLimit, len(rows))
	for _, row := range rows[:limit] {
		if len(row) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(row[0]))
		if assign := lookupAlias(key); assign != nil {
			assign(rec, strings.TrimSpace(row[1]))
		}
	}
}
