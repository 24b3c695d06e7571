package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fintrackr/fintrackr/internal/domain"
)

// ParsedTransaction is one validated, normalized CSV row ready for insertion.
type ParsedTransaction struct {
	Date        time.Time
	Description string
	Amount      float64
	Category    domain.Category
}

// fieldAliases maps each logical field to the accepted column-name spellings,
// tried in priority order.
var fieldAliases = map[string][]string{
	"date":        {"date", "Date", "DATE", "transaction_date"},
	"description": {"description", "Description", "DESCRIPTION", "desc", "narration"},
	"amount":      {"amount", "Amount", "AMOUNT", "value"},
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// MissingFieldError reports a row where a required field could not be
// resolved through any of its column aliases. The raw row is carried for
// diagnostics.
type MissingFieldError struct {
	Row map[string]string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row missing required fields: %s", formatRow(e.Row))
}

// InvalidAmountError reports a non-numeric or zero amount value.
type InvalidAmountError struct {
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount in row: %s", e.Value)
}

// InvalidDateError reports an unparseable date value.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date in row: %s", e.Value)
}

// parseRow validates one CSV row (column name -> raw text) and produces a
// normalized transaction. It is a pure transform; persistence happens later.
func parseRow(row map[string]string) (ParsedTransaction, error) {
	dateRaw := resolveField(row, "date")
	descRaw := resolveField(row, "description")
	amountRaw := resolveField(row, "amount")

	if dateRaw == "" || descRaw == "" || amountRaw == "" {
		return ParsedTransaction{}, &MissingFieldError{Row: row}
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(amountRaw), 64)
	if err != nil || math.IsNaN(amount) || amount == 0 {
		return ParsedTransaction{}, &InvalidAmountError{Value: amountRaw}
	}

	date, err := ParseDate(strings.TrimSpace(dateRaw))
	if err != nil {
		return ParsedTransaction{}, &InvalidDateError{Value: dateRaw}
	}

	desc := strings.TrimSpace(descRaw)

	// Source amounts may be signed; the stored magnitude is always positive.
	return ParsedTransaction{
		Date:        date,
		Description: desc,
		Amount:      math.Abs(amount),
		Category:    Categorize(desc),
	}, nil
}

// resolveField returns the first non-empty value among the field's aliases.
func resolveField(row map[string]string, field string) string {
	for _, alias := range fieldAliases[field] {
		if v, ok := row[alias]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ParseDate parses a transaction date, trying the accepted layouts in order.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// formatRow renders a raw row with sorted keys so error messages are stable.
func formatRow(row map[string]string) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%q", k, row[k])
	}
	b.WriteString("}")
	return b.String()
}
