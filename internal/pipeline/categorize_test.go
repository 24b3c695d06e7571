package pipeline

import (
	"testing"

	"github.com/fintrackr/fintrackr/internal/domain"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        domain.Category
	}{
		{
			name:        "swiggy order",
			description: "Swiggy order #1234",
			want:        domain.CategoryFood,
		},
		{
			name:        "keyword match is case insensitive",
			description: "SWIGGY ORDER",
			want:        domain.CategoryFood,
		},
		{
			name:        "restaurant keyword",
			description: "Dinner at a restaurant",
			want:        domain.CategoryFood,
		},
		{
			name:        "monthly rent",
			description: "Monthly rent payment",
			want:        domain.CategoryRent,
		},
		{
			name:        "house keyword",
			description: "House deposit",
			want:        domain.CategoryRent,
		},
		{
			name:        "uber ride",
			description: "Uber to airport",
			want:        domain.CategoryTransport,
		},
		{
			name:        "fuel keyword",
			description: "Fuel refill",
			want:        domain.CategoryTransport,
		},
		{
			name:        "amazon purchase",
			description: "Amazon purchase",
			want:        domain.CategoryShopping,
		},
		{
			name:        "netflix subscription",
			description: "Netflix monthly",
			want:        domain.CategorySubscriptions,
		},
		{
			name:        "no keyword falls back to others",
			description: "Doctor visit",
			want:        domain.CategoryOthers,
		},
		{
			name:        "empty description",
			description: "",
			want:        domain.CategoryOthers,
		},
		{
			name:        "keyword inside a longer word still matches",
			description: "Carpool via uberpool",
			want:        domain.CategoryTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.description)
			if got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	// "rent" appears in a food-rule description too; food rules are checked
	// first so the food keyword must win.
	got := Categorize("Swiggy order paid with rent money")
	if got != domain.CategoryFood {
		t.Errorf("Categorize() = %q, want %q", got, domain.CategoryFood)
	}
}
