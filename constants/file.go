package constants

import "strings"

// Source formats for extraction jobs.
const (
	PDF = "PDF"
	CSV = "CSV"
)

// FileTypes holds the allowed source formats.
var FileTypes = []string{PDF, CSV}

// AllowedExtensions holds the default allowed file extensions for invoice parsing.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"csv": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to a source format, or "" when the
// extension is not supported. Routing is by suffix only; content is never
// sniffed.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "csv":
		return CSV
	default:
		return ""
	}
}
