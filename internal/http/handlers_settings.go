package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"dailyfuel/internal/core"
)

type preferencesResponse struct {
	DailyLimit decimal.Decimal `json:"dailyLimit"`
	Currency   string          `json:"currency"`
	Theme      core.Theme      `json:"theme"`
}

type updatePreferencesRequest struct {
	DailyLimit *json.RawMessage `json:"dailyLimit"`
	Currency   *string          `json:"currency"`
	Theme      *string          `json:"theme"`
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": s.registry.List(),
		"customs":    s.registry.Customs(),
	})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Empty and duplicate names are silent no-ops, matching the registry
	// contract; only the resulting list tells the caller what happened.
	_ = s.registry.Add(r.Context(), req.Name)
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.registry.List()})
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	_ = s.registry.Remove(r.Context(), r.PathValue("name"))
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.registry.List()})
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentPreferences())
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req updatePreferencesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if req.DailyLimit != nil {
		// Any decimal is accepted here, negatives included; zero disables
		// the budget view
		raw := strings.Trim(strings.TrimSpace(string(*req.DailyLimit)), `"`)
		limit, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid daily limit")
			return
		}
		_ = s.prefs.SetDailyLimit(ctx, limit)
	}
	if req.Currency != nil {
		_ = s.prefs.SetCurrency(ctx, *req.Currency)
	}
	if req.Theme != nil {
		// Unknown theme values are ignored by SetTheme
		_ = s.prefs.SetTheme(ctx, core.Theme(*req.Theme))
	}

	writeJSON(w, http.StatusOK, s.currentPreferences())
}

func (s *Server) currentPreferences() preferencesResponse {
	return preferencesResponse{
		DailyLimit: s.prefs.DailyLimit(),
		Currency:   s.prefs.Currency(),
		Theme:      s.prefs.Theme(),
	}
}
