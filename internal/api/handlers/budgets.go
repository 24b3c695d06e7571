package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fintrackr/fintrackr/internal/api/middleware"
	"github.com/fintrackr/fintrackr/internal/budget"
	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/store"
)

// BudgetsHandler handles budget-related endpoints.
type BudgetsHandler struct {
	budgets store.BudgetStore
	txs     store.TransactionStore
	log     zerolog.Logger
}

// NewBudgetsHandler creates a new budgets handler.
func NewBudgetsHandler(budgets store.BudgetStore, txs store.TransactionStore, log zerolog.Logger) *BudgetsHandler {
	return &BudgetsHandler{
		budgets: budgets,
		txs:     txs,
		log:     log,
	}
}

// Set handles POST /api/budget/set. Re-submitting for the same month
// overwrites the previous budget.
func (h *BudgetsHandler) Set(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Month           string                      `json:"month"`
		TotalBudget     float64                     `json:"totalBudget"`
		CategoryBudgets map[domain.Category]float64 `json:"categoryBudgets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := domain.ParseMonthKey(req.Month); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid month format (expected YYYY-MM)")
		return
	}
	if req.TotalBudget <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Total budget must be a positive number")
		return
	}
	for cat := range req.CategoryBudgets {
		if !cat.Valid() {
			middleware.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown category %q", cat))
			return
		}
	}

	b := &domain.Budget{
		UserID:          user.ID,
		Month:           req.Month,
		TotalBudget:     req.TotalBudget,
		CategoryBudgets: req.CategoryBudgets,
	}
	if err := h.budgets.Upsert(r.Context(), b); err != nil {
		h.log.Error().Err(err).Str("month", req.Month).Msg("Failed to upsert budget")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save budget")
		return
	}

	saved, err := h.budgets.Get(r.Context(), user.ID, req.Month)
	if err != nil {
		h.log.Error().Err(err).Str("month", req.Month).Msg("Failed to load saved budget")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save budget")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, saved)
}

// Status handles GET /api/budget/status?month=YYYY-MM
func (h *BudgetsHandler) Status(w http.ResponseWriter, r *http.Request) {
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
	if _, err := domain.ParseMonthKey(month); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid month format (expected YYYY-MM)")
		return
	}

	ctx := r.Context()
	b, err := h.budgets.Get(ctx, user.ID, month)
	if errors.Is(err, store.ErrNotFound) {
		// Absence is a valid answer, not an error.
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "No budget set"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("month", month).Msg("Failed to load budget")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load budget")
		return
	}

	categorySpending, err := h.txs.SumByCategory(ctx, user.ID, month)
	if err != nil {
		h.log.Error().Err(err).Str("month", month).Msg("Failed to aggregate spending")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute budget status")
		return
	}

	var spent float64
	for _, amount := range categorySpending {
		spent += amount
	}

	percentageUsed := spent / b.TotalBudget * 100

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"spent":            spent,
		"limit":            b.TotalBudget,
		"status":           budget.CalculateStatus(spent, b.TotalBudget),
		"percentageUsed":   math.Round(percentageUsed*10) / 10,
		"alerts":           budget.Alerts(spent, b.TotalBudget, categorySpending, b.CategoryBudgets),
		"categorySpending": categorySpending,
	})
}
