package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/docufin/invoice-parser/internal/entity"
)

// Output formats accepted by Write. "both" writes JSON and CSV side by side.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatBoth = "both"
)

// IsSupported reports whether format names a supported output format.
func IsSupported(format string) bool {
	switch strings.ToLower(format) {
	case FormatJSON, FormatCSV, FormatXLSX, FormatBoth:
		return true
	}
	return false
}

// Write renders rec in the given format and writes it to disk. Single
// formats write to outPath as given; "both" replaces outPath's extension
// with .json and .csv. Returns the paths written. An unknown format is a
// configuration error, reported before anything is written.
func Write(rec *entity.InvoiceRecord, outPath, format string) ([]string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return []string{outPath}, WriteJSON(rec, outPath)
	case FormatCSV:
		return []string{outPath}, WriteCSV(rec, outPath)
	case FormatXLSX:
		return []string{outPath}, WriteXLSX(rec, outPath)
	case FormatBoth:
		base := strings.TrimSuffix(outPath, filepath.Ext(outPath))
		jsonPath, csvPath := base+".json", base+".csv"
		if err := WriteJSON(rec, jsonPath); err != nil {
			return nil, err
		}
		if err := WriteCSV(rec, csvPath); err != nil {
			return []string{jsonPath}, err
		}
		return []string{jsonPath, csvPath}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: use json, csv, xlsx, or both", format)
	}
}

// Ext returns the file extension for a single output format ("both" maps to
// .json, with the .csv sibling derived by Write).
func Ext(format string) string {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ".csv"
	case FormatXLSX:
		return ".xlsx"
	default:
		return ".json"
	}
}
