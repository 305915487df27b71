// Package extract implements the heuristic invoice extraction engine:
// ordered regex rules for single-valued fields, a line-item table detector
// for row and free-text input, and a bilingual key/value metadata scanner.
//
// The engine is pure and stateless: every call is a function of its input
// plus the fixed rule tables. Misses are not errors — each field keeps its
// documented default, so partial extraction always produces a complete
// record.
package extract

import (
	"regexp"
	"strings"

	"github.com/docufin/invoice-parser/internal/amount"
	"github.com/docufin/invoice-parser/internal/entity"
)

// FieldRule is one named, case-insensitive regex rule. The first capture
// group of the first match wins; rules never share match state.
type FieldRule struct {
	Name    string
	Pattern *regexp.Regexp
	Assign  func(rec *entity.InvoiceRecord, match string)
}

// fieldRules is the ordered rule table for the PDF-path single-valued
// fields. Tie-break is explicit: within one rule the leftmost match wins,
// and each rule runs independently over the whole text.
var fieldRules = []FieldRule{
	{
		Name:    "invoice_number",
		Pattern: regexp.MustCompile(`(?i)(?:Invoice|Facture|INV)\s*[#:]?\s*([A-Z0-9-]+)`),
		Assign: func(rec *entity.InvoiceRecord, m string) {
			rec.InvoiceNumber = strings.TrimSpace(m)
		},
	},
	{
		// YYYY-MM-DD, MM/DD/YYYY, MM-DD-YYYY tried in that order at each
		// position. The raw token is kept; no calendar validation.
		Name:    "invoice_date",
		Pattern: regexp.MustCompile(`(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4}|\d{2}-\d{2}-\d{4})`),
		Assign: func(rec *entity.InvoiceRecord, m string) {
			rec.InvoiceDate = m
		},
	},
	{
		Name:    "total_amount",
		Pattern: regexp.MustCompile(`(?i)(?:Total|TOTAL|Grand Total)\s*:?\s*\$?\s*([0-9,]+\.\d{2})`),
		Assign: func(rec *entity.InvoiceRecord, m string) {
			rec.TotalAmount = amount.Normalize(m)
		},
	},
	{
		Name:    "subtotal",
		Pattern: regexp.MustCompile(`(?i)(?:Subtotal|Sub-Total|SUBTOTAL)\s*:?\s*\$?\s*([0-9,]+\.\d{2})`),
		Assign: func(rec *entity.InvoiceRecord, m string) {
			rec.Subtotal = amount.Normalize(m)
		},
	},
	{
		// Bilingual tax codes: GST/HST plus the Quebec TVH/TPS/TVQ family.
		Name:    "tax_amount",
		Pattern: regexp.MustCompile(`(?i)(?:Tax|GST|HST|TVH|TPS|TVQ)\s*:?\s*\$?\s*([0-9,]+\.\d{2})`),
		Assign: func(rec *entity.InvoiceRecord, m string) {
			rec.TaxAmount = amount.Normalize(m)
		},
	},
}

// TextFields applies the ordered rule table to text and fills rec. Every
// miss keeps the field's default; there is no error path.
func TextFields(text string, rec *entity.InvoiceRecord) {
	for _, rule := range fieldRules {
		if m := rule.Pattern.FindStringSubmatch(text); m != nil {
			rule.Assign(rec, m[1])
		}
	}
	if v := firstContentLine(text); v != "" {
		rec.VendorName = v
	}
}

// firstContentLine returns the first non-empty line longer than three
// characters. Positional, not semantic: documents with leading boilerplate
// will misfire, and that is accepted behavior.
func firstContentLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 3 {
			return line
		}
	}
	return ""
}
