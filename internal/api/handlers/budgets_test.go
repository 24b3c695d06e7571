package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackr/fintrackr/internal/api/handlers"
	"github.com/fintrackr/fintrackr/internal/api/middleware"
	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/store"
)

// mockBudgetStore is an in-memory budget store keyed by (user, month).
type mockBudgetStore struct {
	budgets map[string]*domain.Budget
}

func newMockBudgetStore() *mockBudgetStore {
	return &mockBudgetStore{budgets: make(map[string]*domain.Budget)}
}

func (m *mockBudgetStore) Upsert(ctx context.Context, b *domain.Budget) error {
	key := b.UserID + "/" + b.Month
	if existing, ok := m.budgets[key]; ok {
		existing.TotalBudget = b.TotalBudget
		existing.CategoryBudgets = b.CategoryBudgets
		return nil
	}
	m.budgets[key] = &domain.Budget{
		ID:              key,
		UserID:          b.UserID,
		Month:           b.Month,
		TotalBudget:     b.TotalBudget,
		CategoryBudgets: b.CategoryBudgets,
		UpdatedAt:       time.Now(),
	}
	return nil
}

func (m *mockBudgetStore) Get(ctx context.Context, userID, month string) (*domain.Budget, error) {
	if b, ok := m.budgets[userID+"/"+month]; ok {
		return b, nil
	}
	return nil, store.ErrNotFound
}

// mockSumStore provides just the aggregation the status endpoint needs.
type mockSumStore struct {
	store.TransactionStore
	sums map[domain.Category]float64
}

func (m *mockSumStore) SumByCategory(ctx context.Context, userID, month string) (map[domain.Category]float64, error) {
	return m.sums, nil
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	user := &domain.User{ID: "user-1", Email: "user@example.com"}
	return r.WithContext(middleware.WithUser(r.Context(), user))
}

func TestBudgetsHandler_SetThenStatus(t *testing.T) {
	budgets := newMockBudgetStore()
	txs := &mockSumStore{sums: map[domain.Category]float64{
		domain.CategoryFood: 3000,
		domain.CategoryRent: 1800,
	}}
	h := handlers.NewBudgetsHandler(budgets, txs, zerolog.Nop())

	// Set a budget for the month.
	w := httptest.NewRecorder()
	h.Set(w, authedRequest(http.MethodPost, "/api/budget/set",
		`{"month":"2025-01","totalBudget":5000,"categoryBudgets":{"food":2000}}`))
	if w.Code != http.StatusOK {
		t.Fatalf("Set() status = %d, body = %s", w.Code, w.Body.String())
	}

	// Status reflects the stored limit and the aggregated spend.
	w = httptest.NewRecorder()
	h.Status(w, authedRequest(http.MethodGet, "/api/budget/status?month=2025-01", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("Status() status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Spent          float64 `json:"spent"`
		Limit          float64 `json:"limit"`
		Status         string  `json:"status"`
		PercentageUsed float64 `json:"percentageUsed"`
		Alerts         []struct {
			Severity string `json:"severity"`
			Message  string `json:"message"`
		} `json:"alerts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal status response: %v", err)
	}

	if resp.Spent != 4800 {
		t.Errorf("spent = %v, want 4800", resp.Spent)
	}
	if resp.Limit != 5000 {
		t.Errorf("limit = %v, want 5000", resp.Limit)
	}
	if resp.Status != "warning" {
		t.Errorf("status = %q, want warning", resp.Status)
	}
	if resp.PercentageUsed != 96 {
		t.Errorf("percentageUsed = %v, want 96", resp.PercentageUsed)
	}

	// 96% overall plus food over its category limit.
	if len(resp.Alerts) != 2 {
		t.Fatalf("alerts = %+v, want 2", resp.Alerts)
	}
	if resp.Alerts[0].Severity != "warning" {
		t.Errorf("first alert severity = %q, want warning", resp.Alerts[0].Severity)
	}
	if resp.Alerts[1].Severity != "danger" || !strings.Contains(resp.Alerts[1].Message, "Food budget exceeded") {
		t.Errorf("second alert = %+v, want food danger", resp.Alerts[1])
	}
}

func TestBudgetsHandler_Set_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad month", body: `{"month":"Jan 2025","totalBudget":5000}`},
		{name: "zero total", body: `{"month":"2025-01","totalBudget":0}`},
		{name: "negative total", body: `{"month":"2025-01","totalBudget":-10}`},
		{name: "unknown category", body: `{"month":"2025-01","totalBudget":5000,"categoryBudgets":{"groceries":100}}`},
		{name: "not json", body: `month=2025-01`},
	}

	h := handlers.NewBudgetsHandler(newMockBudgetStore(), &mockSumStore{}, zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Set(w, authedRequest(http.MethodPost, "/api/budget/set", tt.body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("Set() status = %d, want 400", w.Code)
			}
		})
	}
}

func TestBudgetsHandler_Status_NoBudget(t *testing.T) {
	h := handlers.NewBudgetsHandler(newMockBudgetStore(), &mockSumStore{}, zerolog.Nop())

	w := httptest.NewRecorder()
	h.Status(w, authedRequest(http.MethodGet, "/api/budget/status?month=2025-01", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("Status() status = %d, want 200", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["message"] != "No budget set" {
		t.Errorf("message = %q, want %q", resp["message"], "No budget set")
	}
}

func TestBudgetsHandler_Status_MissingMonth(t *testing.T) {
	h := handlers.NewBudgetsHandler(newMockBudgetStore(), &mockSumStore{}, zerolog.Nop())

	w := httptest.NewRecorder()
	h.Status(w, authedRequest(http.MethodGet, "/api/budget/status", ""))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status() status = %d, want 400", w.Code)
	}
}
