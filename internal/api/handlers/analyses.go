package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fintrackr/fintrackr/internal/analysis"
	"github.com/fintrackr/fintrackr/internal/api/middleware"
	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/store"
)

// AnalysesHandler handles AI spending-analysis endpoints.
type AnalysesHandler struct {
	service  *analysis.Service
	analyses store.AnalysisStore
	log      zerolog.Logger
}

// NewAnalysesHandler creates a new analyses handler.
func NewAnalysesHandler(service *analysis.Service, analyses store.AnalysisStore, log zerolog.Logger) *AnalysesHandler {
	return &AnalysesHandler{
		service:  service,
		analyses: analyses,
		log:      log,
	}
}

// Analyze handles POST /api/ai/analyze. Re-analyzing a month overwrites the
// stored record for that month.
func (h *AnalysesHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Month string `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Month == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Month is required (format: YYYY-MM)")
		return
	}
	if _, err := domain.ParseMonthKey(req.Month); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid month format (expected YYYY-MM)")
		return
	}

	record, err := h.service.Analyze(r.Context(), user.ID, req.Month)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "No transactions found for this month")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("month", req.Month).Msg("Failed to analyze spending")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to analyze spending")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, record)
}

// Get handles GET /api/ai/analysis?month=YYYY-MM
func (h *AnalysesHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Month is required (format: YYYY-MM)")
		return
	}

	record, err := h.analyses.Get(r.Context(), user.ID, month)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "No analysis found for this month")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("month", month).Msg("Failed to load analysis")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, record)
}

// List handles GET /api/ai/analyses
func (h *AnalysesHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	records, err := h.analyses.List(r.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list analyses")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}

	if records == nil {
		records = []*domain.Analysis{}
	}
	middleware.WriteJSON(w, http.StatusOK, records)
}
