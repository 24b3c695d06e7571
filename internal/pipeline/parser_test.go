package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/fintrackr/fintrackr/internal/domain"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		name    string
		row     map[string]string
		want    ParsedTransaction
		wantErr error
	}{
		{
			name: "canonical column names",
			row:  map[string]string{"date": "2025-01-15", "description": "Swiggy order", "amount": "450.50"},
			want: ParsedTransaction{
				Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
				Description: "Swiggy order",
				Amount:      450.50,
				Category:    domain.CategoryFood,
			},
		},
		{
			name: "capitalized aliases",
			row:  map[string]string{"Date": "2025-01-15", "Description": "Uber ride", "Amount": "120"},
			want: ParsedTransaction{
				Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
				Description: "Uber ride",
				Amount:      120,
				Category:    domain.CategoryTransport,
			},
		},
		{
			name: "narration and value aliases",
			row:  map[string]string{"transaction_date": "2025-02-01", "narration": "Netflix", "value": "199"},
			want: ParsedTransaction{
				Date:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
				Description: "Netflix",
				Amount:      199,
				Category:    domain.CategorySubscriptions,
			},
		},
		{
			name: "negative amount is normalized to its magnitude",
			row:  map[string]string{"date": "2025-01-15", "description": "Refund reversal", "amount": "-500.00"},
			want: ParsedTransaction{
				Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
				Description: "Refund reversal",
				Amount:      500.00,
				Category:    domain.CategoryOthers,
			},
		},
		{
			name: "description is trimmed before categorization",
			row:  map[string]string{"date": "2025-01-15", "description": "  Amazon  ", "amount": "999"},
			want: ParsedTransaction{
				Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
				Description: "Amazon",
				Amount:      999,
				Category:    domain.CategoryShopping,
			},
		},
		{
			name:    "missing description",
			row:     map[string]string{"date": "2025-01-15", "amount": "450"},
			wantErr: &MissingFieldError{},
		},
		{
			name:    "blank field counts as missing",
			row:     map[string]string{"date": "2025-01-15", "description": "   ", "amount": "450"},
			wantErr: &MissingFieldError{},
		},
		{
			name:    "non-numeric amount",
			row:     map[string]string{"date": "2025-01-15", "description": "Swiggy", "amount": "abc"},
			wantErr: &InvalidAmountError{},
		},
		{
			name:    "zero amount",
			row:     map[string]string{"date": "2025-01-15", "description": "Swiggy", "amount": "0"},
			wantErr: &InvalidAmountError{},
		},
		{
			name:    "unparseable date",
			row:     map[string]string{"date": "15th Jan", "description": "Swiggy", "amount": "450"},
			wantErr: &InvalidDateError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRow(tt.row)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("parseRow() expected error, got %+v", got)
				}
				switch tt.wantErr.(type) {
				case *MissingFieldError:
					var target *MissingFieldError
					if !errors.As(err, &target) {
						t.Errorf("parseRow() error = %v, want MissingFieldError", err)
					}
				case *InvalidAmountError:
					var target *InvalidAmountError
					if !errors.As(err, &target) {
						t.Errorf("parseRow() error = %v, want InvalidAmountError", err)
					}
				case *InvalidDateError:
					var target *InvalidDateError
					if !errors.As(err, &target) {
						t.Errorf("parseRow() error = %v, want InvalidDateError", err)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("parseRow() unexpected error: %v", err)
			}
			if !got.Date.Equal(tt.want.Date) {
				t.Errorf("Date = %v, want %v", got.Date, tt.want.Date)
			}
			if got.Description != tt.want.Description {
				t.Errorf("Description = %q, want %q", got.Description, tt.want.Description)
			}
			if got.Amount != tt.want.Amount {
				t.Errorf("Amount = %v, want %v", got.Amount, tt.want.Amount)
			}
			if got.Category != tt.want.Category {
				t.Errorf("Category = %q, want %q", got.Category, tt.want.Category)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2025-01-15", want: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{input: "2025-01-15T10:30:00Z", want: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)},
		{input: "01/15/2025", want: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{input: "2025/01/15", want: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{input: "not a date", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMissingFieldError_StableMessage(t *testing.T) {
	err := &MissingFieldError{Row: map[string]string{"b": "2", "a": "1"}}
	want := `row missing required fields: {a="1", b="2"}`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
