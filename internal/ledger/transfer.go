package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/havanahub/investors/internal/impexp"
	"github.com/havanahub/investors/internal/models"
)

// ImportResult reports what an import changed.
type ImportResult struct {
	Format   impexp.Format
	Imported int               // Investors added (CSV) or loaded (JSON)
	Payouts  int               // Payouts loaded (JSON only)
	Skipped  []impexp.RowError // Rejected CSV rows
}

// Import dispatches to ImportJSON or ImportCSV.
func (l *Ledger) Import(ctx context.Context, format impexp.Format, data []byte) (*ImportResult, error) {
	switch format {
	case impexp.FormatJSON:
		return l.ImportJSON(ctx, data)
	case impexp.FormatCSV:
		return l.ImportCSV(ctx, data)
	}
	return nil, validationError("unsupported import format %q", format)
}

// ImportJSON replaces the whole document with the uploaded one. A parse
// failure leaves the current document untouched.
func (l *Ledger) ImportJSON(ctx context.Context, data []byte) (*ImportResult, error) {
	doc, err := impexp.ParseJSON(data)
	if err != nil {
		return nil, l.reject(OpImportJSON, err)
	}

	err = l.commit(ctx, OpImportJSON, func(next *models.Document) error {
		*next = *doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Document imported",
		"format", impexp.FormatJSON,
		"investors", len(doc.Investors),
		"payouts", len(doc.Payouts),
	)
	return &ImportResult{
		Format:   impexp.FormatJSON,
		Imported: len(doc.Investors),
		Payouts:  len(doc.Payouts),
	}, nil
}

// ImportCSV appends every parsed row as a new investor, without merging by
// name. Rejected rows are reported and the rest are still imported.
func (l *Ledger) ImportCSV(ctx context.Context, data []byte) (*ImportResult, error) {
	parsed, err := impexp.ParseCSV(data)
	if err != nil {
		return nil, l.reject(OpImportCSV, err)
	}

	err = l.commit(ctx, OpImportCSV, func(doc *models.Document) error {
		for _, inv := range parsed.Investors {
			inv.ID = l.newID()
			doc.Investors = append(doc.Investors, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, skipped := range parsed.Skipped {
		slog.Warn("CSV row skipped", "line", skipped.Line, "reason", skipped.Reason)
	}
	slog.Info("Document imported",
		"format", impexp.FormatCSV,
		"investors", len(parsed.Investors),
		"skipped", len(parsed.Skipped),
	)
	return &ImportResult{
		Format:   impexp.FormatCSV,
		Imported: len(parsed.Investors),
		Skipped:  parsed.Skipped,
	}, nil
}

// Export writes the current document in the given format.
func (l *Ledger) Export(w io.Writer, format impexp.Format) error {
	doc := l.Document()
	switch format {
	case impexp.FormatJSON:
		return impexp.WriteJSON(w, doc)
	case impexp.FormatCSV:
		return impexp.WriteCSV(w, doc)
	}
	return fmt.Errorf("unsupported export format %q", format)
}
