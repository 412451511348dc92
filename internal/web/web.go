// Package web serves the browser-facing pages and file downloads.
package web

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/havanahub/investors/internal/impexp"
	"github.com/havanahub/investors/internal/ledger"
	"github.com/havanahub/investors/internal/render"
)

// Handler renders the dashboard, the report and the export downloads.
type Handler struct {
	ledger       *ledger.Ledger
	formatter    *render.Formatter
	page         *render.Page
	authRequired bool
}

// New creates a Handler. authRequired tells the dashboard page to log in
// before sending mutations.
func New(l *ledger.Ledger, formatter *render.Formatter, authRequired bool) (*Handler, error) {
	page, err := render.NewPage()
	if err != nil {
		return nil, err
	}
	return &Handler{
		ledger:       l,
		formatter:    formatter,
		page:         page,
		authRequired: authRequired,
	}, nil
}

// Register mounts the routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("GET /report", h.Report)
	mux.HandleFunc("GET /export/json", h.Export(impexp.FormatJSON))
	mux.HandleFunc("GET /export/csv", h.Export(impexp.FormatCSV))
	mux.HandleFunc("GET /healthz", Healthz)
}

// View builds the dashboard view model of the current document.
func (h *Handler) View() render.Dashboard {
	doc, summary := h.ledger.Snapshot()
	return render.BuildDashboard(doc, summary, h.formatter)
}

// Dashboard serves the HTML dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.page.Render(h.View(), h.authRequired)
	if err != nil {
		slog.Error("Failed to render dashboard", "error", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	writeBody(w, "text/html; charset=utf-8", out)
}

// Report serves the summary report as HTML.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	out, err := render.ReportHTML(h.View())
	if err != nil {
		slog.Error("Failed to render report", "error", err)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	writeBody(w, "text/html; charset=utf-8", out)
}

// Export serves the document as a file download in the given format.
func (h *Handler) Export(format impexp.Format) http.HandlerFunc {
	filename, contentType := impexp.JSONFilename, impexp.JSONContentType
	if format == impexp.FormatCSV {
		filename, contentType = impexp.CSVFilename, impexp.CSVContentType
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := h.ledger.Export(&buf, format); err != nil {
			slog.Error("Export failed", "format", format, "error", err)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		writeBody(w, contentType, buf.Bytes())
	}
}

// Healthz reports that the server is up.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeBody(w, "text/plain; charset=utf-8", []byte("ok"))
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}
