// Package parser routes a source document to the matching extraction
// strategy and assembles the canonical InvoiceRecord.
package parser

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/docufin/invoice-parser/constants"
	"github.com/docufin/invoice-parser/internal/common"
	"github.com/docufin/invoice-parser/internal/decode"
	"github.com/docufin/invoice-parser/internal/entity"
	"github.com/docufin/invoice-parser/internal/extract"
)

// Parser dispatches by file-name suffix: .pdf runs the text-blob strategy,
// .csv the row strategy. The two strategies share no state beyond producing
// the same record shape; each is independently callable via FromText and
// FromRows.
type Parser struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse extracts an InvoiceRecord from the file at path. Routing is by
// suffix only, case-insensitive; content is never sniffed, and an unknown
// suffix is a configuration error rather than a parse failure.
func (p *Parser) Parse(path string) (*entity.InvoiceRecord, error) {
	switch constants.MapExtToFormat(filepath.Ext(path)) {
	case constants.PDF:
		text, err := decode.PDFText(path)
		if err != nil {
			return nil, err
		}
		rec := p.FromText(text)
		p.logger.Debug("pdf extraction complete",
			"path", path, "invoice_number", rec.InvoiceNumber, "items", len(rec.Items))
		return rec, nil
	case constants.CSV:
		rows, err := decode.CSVRows(path)
		if err != nil {
			return nil, err
		}
		rec := p.FromRows(rows)
		p.logger.Debug("csv extraction complete",
			"path", path, "invoice_number", rec.InvoiceNumber, "items", len(rec.Items))
		return rec, nil
	default:
		return nil, fmt.Errorf("%w: only PDF and CSV are supported, got %q",
			common.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FromText runs the PDF-path strategy over an already-decoded text blob:
// single-valued fields through the regex rule table, line items through the
// free-text shape matcher.
func (p *Parser) FromText(text string) *entity.InvoiceRecord {
	rec := entity.NewInvoiceRecord()
	extract.TextFields(text, rec)
	if items := extract.LineItemsFromText(text); len(items) > 0 {
		rec.Items = items
	}
	return rec
}

// FromRows runs the CSV-path strategy over tokenized rows: leading rows as
// key/value metadata, the rest through the table detector.
func (p *Parser) FromRows(rows [][]string) *entity.InvoiceRecord {
	rec := entity.NewInvoiceRecord()
	extract.MetadataFromRows(rows, rec)
	if items := extract.LineItemsFromRows(rows); len(items) > 0 {
		rec.Items = items
	}
	return rec
}
