package impexp

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/havanahub/investors/internal/models"
)

var csvHeader = []string{"Name", "Amount", "Date", "Method", "Returns"}

// WriteCSV writes one row per investor. Every field is quoted with embedded
// quotes doubled; rows are separated by "\n" with no trailing newline.
// Payouts are not exported.
func WriteCSV(w io.Writer, doc *models.Document) error {
	lines := make([]string, 0, len(doc.Investors)+1)
	lines = append(lines, quoteRow(csvHeader))
	for _, inv := range doc.Investors {
		lines = append(lines, quoteRow([]string{
			inv.Name,
			FormatNumber(inv.Amount.Float64()),
			inv.Date,
			inv.Method,
			FormatNumber(inv.Returns.Float64()),
		}))
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func quoteRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// FormatNumber renders v in its shortest decimal form ("1000", "12.5").
func FormatNumber(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// RowError reports a CSV line that could not be imported.
type RowError struct {
	Line   int // 1-based line number in the uploaded file
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// CSVResult is the outcome of parsing an investor CSV.
type CSVResult struct {
	Investors []models.Investor // Parsed rows, IDs unset
	Skipped   []RowError
}

// ParseCSV reads investor rows. The first line is the header; its cells are
// matched case-insensitively against name, amount, date, method and returns,
// in any order, extra columns ignored. Lines are split on every comma, so
// commas inside quoted cells are not supported. Missing cells default to ""
// or 0 and a missing name becomes "Unknown". A row whose amount or returns is
// present but not numeric is skipped and reported; other rows still import.
func ParseCSV(data []byte) (*CSVResult, error) {
	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(string(data)), "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("%w: missing header row", ErrParse)
	}

	header := strings.Split(lines[0], ",")
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(h, `"`, "")))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	result := &CSVResult{Investors: []models.Investor{}}
	for i, line := range lines[1:] {
		lineNo := i + 2
		if strings.TrimSpace(line) == "" {
			continue
		}

		cells := strings.Split(line, ",")
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(cells) {
				return ""
			}
			return unquoteCell(cells[idx])
		}

		amount, err := parseCell(cell("amount"))
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: lineNo, Reason: "amount " + err.Error()})
			continue
		}
		returns, err := parseCell(cell("returns"))
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: lineNo, Reason: "returns " + err.Error()})
			continue
		}

		name := cell("name")
		if name == "" {
			name = "Unknown"
		}

		result.Investors = append(result.Investors, models.Investor{
			Name:    name,
			Amount:  models.Amount(amount),
			Date:    cell("date"),
			Method:  cell("method"),
			Returns: models.Amount(returns),
		})
	}

	return result, nil
}

// unquoteCell strips one leading and one trailing double quote.
func unquoteCell(s string) string {
	s = strings.TrimSuffix(s, "\r")
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return ParseNumber(s)
}

// ParseNumber parses a plain decimal number such as "1000", "12.5" or "1e3".
// The syntax is checked with decimal and the value converted with strconv,
// which clamps exponents instead of expanding them. Values outside the
// float64 range are rejected.
func ParseNumber(s string) (float64, error) {
	if _, err := decimal.NewFromString(s); err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return v, nil
}
