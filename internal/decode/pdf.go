// Package decode holds the boundary collaborators that turn source files
// into the shapes the extraction engine consumes: a plain text blob for the
// PDF path and ordered rows of string cells for the CSV path.
package decode

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docufin/invoice-parser/internal/common"
)

// PDFText decodes the full plain text of the PDF at path, pages joined in
// document order. Layout is not preserved beyond the decoder's own text
// ordering. A PDF that decodes to no text at all is a hard failure for that
// document — there is nothing for the engine to scan.
func PDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Broken page; keep whatever the rest of the document yields.
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(pageText)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: %s", common.ErrEmptyDocument, path)
	}
	return text.String(), nil
}
