package constants

import "strings"

// Formats routed by the unified importer.
const (
	Excel = "EXCEL"
	CSV   = "CSV"
	TXT   = "TXT"
	Word  = "WORD"
	PDF   = "PDF"
)

// AllowedExtensions holds the file extensions the importer accepts.
var AllowedExtensions = map[string]struct{}{
	"xlsx": {},
	"xls":  {},
	"csv":  {},
	"txt":  {},
	"docx": {},
	"pdf":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the importer format for a normalized extension,
// or "" when the extension is not supported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "xlsx", "xls":
		return Excel
	case "csv":
		return CSV
	case "txt":
		return TXT
	case "docx":
		return Word
	case "pdf":
		return PDF
	default:
		return ""
	}
}
