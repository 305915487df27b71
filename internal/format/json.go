// Package format renders an InvoiceRecord to the supported output formats
// and writes the result to disk.
package format

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/docufin/invoice-parser/internal/entity"
)

// JSONBytes renders the record as pretty-printed JSON. Field names match
// the record attributes; there is no schema versioning.
func JSONBytes(rec *entity.InvoiceRecord) ([]byte, error) {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal invoice: %w", err)
	}
	return b, nil
}

// WriteJSON writes the record as JSON to path.
func WriteJSON(rec *entity.InvoiceRecord, path string) error {
	b, err := JSONBytes(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
