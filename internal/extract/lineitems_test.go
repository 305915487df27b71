package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docufin/invoice-parser/internal/entity"
)

func TestIsItemHeader(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  bool
	}{
		{"canonical", []string{"Description", "Quantity", "Unit Price", "Total"}, true},
		{"qty and amount", []string{"Item Description", "Qty", "Rate", "Amount"}, true},
		{"case insensitive", []string{"DESCRIPTION", "QUANTITY", "PRICE", "TOTAL"}, true},
		{"missing description", []string{"Item", "Qty", "Price", "Total"}, false},
		{"missing quantity", []string{"Description", "Units", "Price", "Total"}, false},
		{"missing price", []string{"Description", "Qty", "Rate", "Sum"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isItemHeader(tt.cells))
		})
	}
}

func TestLineItemsFromRows(t *testing.T) {
	rows := [][]string{
		{"Invoice Number", "INV-001"},
		{"Description", "Quantity", "Unit Price", "Total"},
		{"Widget A", "3", "$10.00", "$30.00"},
		{"Widget B", "three", "$5", "$15"}, // bad quantity: dropped whole
		{"Widget C", "1", "2.50", "2.50"},
		{"", "9", "1.00", "9.00"},  // empty description: skipped
		{"Lonely", "2", "4.00"},    // too few cells: skipped
	}
	items := LineItemsFromRows(rows)
	require.Len(t, items, 2)
	assert.Equal(t, entity.LineItem{Description: "Widget A", Quantity: 3, UnitPrice: 10.00, LineTotal: 30.00}, items[0])
	assert.Equal(t, entity.LineItem{Description: "Widget C", Quantity: 1, UnitPrice: 2.50, LineTotal: 2.50}, items[1])
}

func TestLineItemsFromRowsNoHeader(t *testing.T) {
	rows := [][]string{
		{"Invoice Number", "INV-001"},
		{"Widget A", "3", "$10.00", "$30.00"},
	}
	assert.Empty(t, LineItemsFromRows(rows))
}

func TestLineItemsFromRowsHeaderIsLastRow(t *testing.T) {
	rows := [][]string{
		{"Description", "Quantity", "Unit Price", "Total"},
	}
	assert.Empty(t, LineItemsFromRows(rows))
}

// Only the first header match establishes the table; a second header-shaped
// row later is treated as an ordinary (non-numeric, skipped) row.
func TestLineItemsFromRowsFirstHeaderOnly(t *testing.T) {
	rows := [][]string{
		{"Description", "Quantity", "Unit Price", "Total"},
		{"Widget A", "3", "10.00", "30.00"},
		{"Description", "Quantity", "Unit Price", "Total"},
		{"Widget B", "2", "5.00", "10.00"},
	}
	items := LineItemsFromRows(rows)
	require.Len(t, items, 2)
	assert.Equal(t, "Widget A", items[0].Description)
	assert.Equal(t, "Widget B", items[1].Description)
}

func TestLineItemsFromText(t *testing.T) {
	text := "Invoice #123\n" +
		"Widget A 3 $10.00 $30.00\n" +
		"Deluxe Gadget 5 2.00 10.00\n"
	items := LineItemsFromText(text)
	require.Len(t, items, 2)
	assert.Equal(t, entity.LineItem{Description: "Widget A", Quantity: 3, UnitPrice: 10.00, LineTotal: 30.00}, items[0])
	assert.Equal(t, entity.LineItem{Description: "Deluxe Gadget", Quantity: 5, UnitPrice: 2.00, LineTotal: 10.00}, items[1])
}

// The description class includes whitespace, newlines too, so a letters-only
// line directly above an item row is swallowed into its description.
func TestLineItemsFromTextSwallowsPrecedingWordLine(t *testing.T) {
	items := LineItemsFromText("Acme Widgets Ltd\nWidget A 3 $10.00 $30.00")
	require.Len(t, items, 1)
	assert.Equal(t, "Acme Widgets Ltd\nWidget A", items[0].Description)
}

// The shape matcher accepts any four-token run of the right shape — a
// totals line included — and misses descriptions containing digits. Both
// are pinned as documented behavior.
func TestLineItemsFromTextHeuristicLimits(t *testing.T) {
	// False positive: not a real line item, right shape anyway.
	items := LineItemsFromText("Amount due within 30 30.00 30.00")
	require.Len(t, items, 1)

	// False negative: digit in the description breaks the word run.
	items = LineItemsFromText("Item4U 2 5.00 10.00")
	assert.Empty(t, items)
}

func TestLineItemsFromTextEmpty(t *testing.T) {
	assert.Empty(t, LineItemsFromText(""))
	assert.Empty(t, LineItemsFromText("no items here"))
}
