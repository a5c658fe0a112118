// Package http exposes the tracker core to a renderer as a loopback JSON
// API. Handlers translate wire input into core operations and translate the
// core's internal error signals back into the external contract: invalid
// input is rejected without state change, not-found mutations succeed
// silently, persistence failures degrade to in-memory state with a log line.
package http

import (
	"net/http"

	"dailyfuel/internal/middleware/trace"
	"dailyfuel/internal/services"
)

type Server struct {
	http.Server

	ledger   *services.Ledger
	registry *services.Registry
	prefs    *services.Preferences
}

func NewServer(addr string, ledger *services.Ledger, registry *services.Registry, prefs *services.Preferences) *Server {
	s := &Server{
		ledger:   ledger,
		registry: registry,
		prefs:    prefs,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("DELETE /api/expenses", s.handleClearExpenses)
	mux.HandleFunc("POST /api/expenses/samples", s.handleLoadSamples)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleAddCategory)
	mux.HandleFunc("DELETE /api/categories/{name}", s.handleRemoveCategory)

	mux.HandleFunc("GET /api/preferences", s.handleGetPreferences)
	mux.HandleFunc("PUT /api/preferences", s.handleUpdatePreferences)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/trend", s.handleTrend)
	mux.HandleFunc("GET /api/budget", s.handleBudget)
	mux.HandleFunc("GET /export.csv", s.handleExportCSV)

	s.Addr = addr
	s.Handler = trace.Middleware(mux)
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
