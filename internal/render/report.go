package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// SummaryMarkdown renders the dashboard as a markdown report: the summary
// figures followed by the investor and payout tables.
func SummaryMarkdown(d Dashboard) string {
	var b strings.Builder

	b.WriteString("# Havana Hub Investors\n\n")
	fmt.Fprintf(&b, "- **Total raised:** %s\n", d.TotalRaised)
	fmt.Fprintf(&b, "- **Total payouts:** %s\n", d.TotalPayouts)
	fmt.Fprintf(&b, "- **Investors:** %d\n", d.InvestorCount)
	fmt.Fprintf(&b, "- **Payouts:** %d\n\n", d.PayoutCount)

	b.WriteString("## Investors\n\n")
	if len(d.Investors) == 0 {
		b.WriteString("No investors yet.\n\n")
	} else {
		b.WriteString("| Name | Amount | Ownership | Returns | ROI |\n")
		b.WriteString("|---|---:|---:|---:|---:|\n")
		for _, r := range d.Investors {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				cell(r.Name), r.Amount, r.Share, r.Returns, r.ROI)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Payouts\n\n")
	if len(d.Payouts) == 0 {
		b.WriteString("No payouts yet.\n")
	} else {
		b.WriteString("| Investor | Amount | Date | Balance |\n")
		b.WriteString("|---|---:|---|---:|\n")
		for _, r := range d.Payouts {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				cell(r.Investor), r.Amount, cell(r.Date), r.Balance)
		}
	}

	return b.String()
}

// cell keeps user text from breaking out of a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ReportHTML renders the markdown report as a standalone HTML page.
// Raw HTML in the markdown is dropped, so user-provided names are escaped.
func ReportHTML(d Dashboard) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(SummaryMarkdown(d)), &body); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	page.WriteString("<title>Havana Hub Investors Report</title>\n")
	page.WriteString("<style>body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem}" +
		"table{border-collapse:collapse;width:100%}th,td{border:1px solid #ddd;padding:.4rem .6rem}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
