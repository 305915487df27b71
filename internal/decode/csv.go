package decode

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/docufin/invoice-parser/internal/common"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// CSVRows tokenizes the CSV file at path into ordered rows of string cells.
func CSVRows(path string) ([][]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	rows, err := CSVRowsFromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// CSVRowsFromBytes tokenizes raw CSV content. Quoting follows encoding/csv
// with lazy quotes, rows may have ragged lengths, and a leading UTF-8 BOM is
// stripped. An empty document is a hard error: the engine declares no
// precondition beyond its scan limits, so the caller rejects empty input
// here instead.
func CSVRowsFromBytes(content []byte) ([][]string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	r := csv.NewReader(bytes.NewReader(content))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, common.ErrEmptyDocument
	}
	return rows, nil
}
