package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackr/fintrackr/internal/api/middleware"
	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/pipeline"
	"github.com/fintrackr/fintrackr/internal/store"
)

// maxCSVUploadBytes caps CSV uploads at 5 MB.
const maxCSVUploadBytes = 5 << 20

// TransactionsHandler handles transaction-related endpoints.
type TransactionsHandler struct {
	txs      store.TransactionStore
	importer *pipeline.Importer
	log      zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(txs store.TransactionStore, importer *pipeline.Importer, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		txs:      txs,
		importer: importer,
		log:      log,
	}
}

// Add handles POST /api/transactions/add
func (h *TransactionsHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Date        string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Amount == 0 || req.Description == "" || req.Date == "" {
		middleware.WriteError(w, http.StatusBadRequest, "All fields required")
		return
	}
	if req.Amount < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Amount must be a positive number")
		return
	}

	date, err := pipeline.ParseDate(req.Date)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	tx := &domain.Transaction{
		UserID:      user.ID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    pipeline.Categorize(req.Description),
		Date:        date,
	}
	if err := h.txs.Insert(r.Context(), tx); err != nil {
		h.log.Error().Err(err).Msg("Failed to insert transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to add transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// List handles GET /api/transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	query := r.URL.Query()
	filter := store.TransactionFilter{Limit: 100}

	if cat := query.Get("category"); cat != "" {
		category := domain.Category(cat)
		if !category.Valid() {
			middleware.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown category %q", cat))
			return
		}
		filter.Category = category
	}

	startStr, endStr := query.Get("start_date"), query.Get("end_date")
	if startStr != "" && endStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid start_date format")
			return
		}
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid end_date format")
			return
		}
		filter.StartDate = start
		filter.EndDate = end.Add(24*time.Hour - time.Second)
	}

	txs, err := h.txs.List(r.Context(), user.ID, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	if txs == nil {
		txs = []*domain.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, txs)
}

// Delete handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := h.txs.Delete(r.Context(), user.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

// Upload handles POST /api/transactions/upload (multipart field "file").
func (h *TransactionsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCSVUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if !isCSVUpload(header.Filename, header.Header.Get("Content-Type")) {
		middleware.WriteError(w, http.StatusBadRequest, "Only CSV files are allowed")
		return
	}

	result, err := h.importer.Import(r.Context(), user.ID, file)
	if errors.Is(err, pipeline.ErrNoValidRows) {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "No valid transactions found in CSV",
			"errors": result.Errors,
		})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("CSV import failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to import transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":       fmt.Sprintf("Successfully imported %d transactions", result.ImportedCount),
		"importedCount": result.ImportedCount,
		"errors":        result.Errors,
	})
}

func isCSVUpload(filename, contentType string) bool {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return true
	}
	return contentType == "text/csv" || contentType == "application/vnd.ms-excel"
}
