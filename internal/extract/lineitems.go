package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/docufin/invoice-parser/internal/amount"
	"github.com/docufin/invoice-parser/internal/entity"
)

// minItemCells is the cell count a row needs to be either the table header
// or a line-item candidate.
const minItemCells = 4

// itemLinePattern matches a free-text line item by shape alone: alphabetic
// words, an integer quantity, then two money tokens with two decimals, each
// optionally $-prefixed. Any four-token run of that shape matches — a totals
// line included — and descriptions containing digits or punctuation are
// missed. Both are documented behavior of the heuristic, not defects.
var itemLinePattern = regexp.MustCompile(`([A-Za-z][A-Za-z\s]+)\s+(\d+)\s+\$?([0-9,]+\.\d{2})\s+\$?([0-9,]+\.\d{2})`)

// isItemHeader reports whether the row's concatenated text names the
// {description, quantity, price} column set, case-insensitively.
func isItemHeader(cells []string) bool {
	combined := strings.ToLower(strings.Join(cells, " "))
	return strings.Contains(combined, "description") &&
		(strings.Contains(combined, "quantity") || strings.Contains(combined, "qty")) &&
		(strings.Contains(combined, "price") || strings.Contains(combined, "amount"))
}

// LineItemsFromRows scans rows in order for the first header row and
// recovers one LineItem per well-formed row after it. Rows with fewer than
// four cells or an empty first cell are skipped; a row whose quantity fails
// to parse as an integer is dropped whole and scanning continues. No header
// means zero items, not an error.
func LineItemsFromRows(rows [][]string) []entity.LineItem {
	itemsStart := -1
	for i, row := range rows {
		if len(row) >= minItemCells && isItemHeader(row) {
			itemsStart = i + 1
			break
		}
	}
	if itemsStart == -1 || itemsStart >= len(rows) {
		return nil
	}

	var items []entity.LineItem
	for _, row := range rows[itemsStart:] {
		if len(row) < minItemCells || strings.TrimSpace(row[0]) == "" {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			continue
		}
		items = append(items, entity.LineItem{
			Description: strings.TrimSpace(row[0]),
			Quantity:    qty,
			UnitPrice:   amount.Normalize(strings.TrimSpace(row[2])),
			LineTotal:   amount.Normalize(strings.TrimSpace(row[3])),
		})
	}
	return items
}

// LineItemsFromText recovers line items from a raw text blob. Every
// non-overlapping match of itemLinePattern becomes one item, in document
// order.
func LineItemsFromText(text string) []entity.LineItem {
	var items []entity.LineItem
	for _, m := range itemLinePattern.FindAllStringSubmatch(text, -1) {
		qty, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		items = append(items, entity.LineItem{
			Description: strings.TrimSpace(m[1]),
			Quantity:    qty,
			UnitPrice:   amount.Normalize(m[3]),
			LineTotal:   amount.Normalize(m[4]),
		})
	}
	return items
}
