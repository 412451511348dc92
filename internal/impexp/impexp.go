// Package impexp converts the ledger document to and from its JSON and CSV
// file forms.
package impexp

import (
	"errors"
	"strings"
)

// File names offered for downloads.
const (
	JSONFilename = "havana_investors_export.json"
	CSVFilename  = "investors.csv"
)

// Content types for downloads.
const (
	JSONContentType = "application/json"
	CSVContentType  = "text/csv"
)

// Format identifies an import/export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrParse is wrapped by every import parse failure.
var ErrParse = errors.New("import failed")

// ParseFormat accepts "json" or "csv" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", errors.New("format must be json or csv")
}

// DetectFormat picks the import format from an uploaded file name:
// a .json suffix is JSON, anything else is read as CSV.
func DetectFormat(filename string) Format {
	if strings.HasSuffix(strings.ToLower(filename), ".json") {
		return FormatJSON
	}
	return FormatCSV
}
