// Package pipeline implements the CSV-import transaction pipeline: per-row
// field resolution and validation, keyword categorization, and the bulk write
// of the accepted batch.
package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/store"
)

// ErrNoValidRows is returned when an import produced zero accepted rows; the
// whole file is rejected and the per-row errors are reported to the caller.
var ErrNoValidRows = errors.New("no valid transactions found in CSV")

// ImportResult reports the outcome of one CSV import. A non-empty Errors list
// alongside a positive ImportedCount is a partial success, not a failure.
type ImportResult struct {
	ImportedCount int      `json:"importedCount"`
	Errors        []string `json:"errors,omitempty"`
}

// Importer parses uploaded CSV files and persists the accepted rows.
type Importer struct {
	store store.TransactionStore
	log   zerolog.Logger
}

// NewImporter creates a CSV importer backed by the given transaction store.
func NewImporter(txStore store.TransactionStore, log zerolog.Logger) *Importer {
	return &Importer{store: txStore, log: log}
}

// Import reads a CSV stream (header row required), validates rows in file
// order, and bulk-inserts the accepted subset for the user.
//
// Failed rows never abort the batch: they are collected as error strings and
// parsing continues. Only a batch with zero surviving rows is rejected, with
// ErrNoValidRows. If the bulk insert itself fails, nothing is persisted and
// the storage error is returned.
func (im *Importer) Import(ctx context.Context, userID string, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("pipeline: read CSV header: %w", err)
	}

	result := &ImportResult{}
	var accepted []*domain.Transaction

	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: malformed CSV: %v", rowNum, err))
			continue
		}

		parsed, err := parseRow(rowToMap(header, record))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		accepted = append(accepted, &domain.Transaction{
			UserID:      userID,
			Amount:      parsed.Amount,
			Description: parsed.Description,
			Category:    parsed.Category,
			Date:        parsed.Date,
		})
	}

	if len(accepted) == 0 {
		return result, ErrNoValidRows
	}

	if err := im.store.InsertMany(ctx, accepted); err != nil {
		return nil, err
	}

	result.ImportedCount = len(accepted)
	im.log.Info().
		Str("user_id", userID).
		Int("imported", result.ImportedCount).
		Int("rejected", len(result.Errors)).
		Msg("CSV import completed")

	return result, nil
}

// rowToMap zips a header with one record. Short records leave trailing
// columns absent; extra values beyond the header are dropped.
func rowToMap(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(record) {
			row[col] = record[i]
		}
	}
	return row
}
