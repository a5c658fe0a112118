package http

import (
	"log/slog"
	"net/http"
	"time"

	"dailyfuel/internal/export"
	"dailyfuel/internal/report"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	window := report.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = report.WindowAll
	}
	if !window.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "invalid window")
		return
	}

	filtered := report.Filter(s.ledger.Expenses(), time.Now(), window)
	writeJSON(w, http.StatusOK, map[string]any{
		"window":    window,
		"total":     report.Sum(filtered),
		"breakdown": report.Breakdown(filtered),
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	buckets := report.Trend(s.ledger.Expenses(), time.Now())
	writeJSON(w, http.StatusOK, map[string]any{"buckets": buckets})
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	status := report.Budget(s.ledger.Expenses(), time.Now(), s.prefs.DailyLimit())
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	csv, err := export.Render(s.ledger.Expenses())
	if err != nil {
		// Nothing to export; the renderer shows the notice
		w.WriteHeader(http.StatusNoContent)
		return
	}

	slog.InfoContext(r.Context(), "Ledger exported",
		"component", "http", "operation", "export", "count", s.ledger.Size())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(now)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
