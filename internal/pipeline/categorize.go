package pipeline

import (
	"strings"

	"github.com/fintrackr/fintrackr/internal/domain"
)

// categoryRule binds a category to the keywords that select it.
type categoryRule struct {
	category domain.Category
	keywords []string
}

// categoryRules is evaluated top-to-bottom; the first rule with any keyword
// appearing as a substring of the description wins. Order resolves ambiguity
// when a description matches keywords from more than one rule.
var categoryRules = []categoryRule{
	{domain.CategoryFood, []string{"swiggy", "zomato", "restaurant"}},
	{domain.CategoryRent, []string{"rent", "house"}},
	{domain.CategoryTransport, []string{"uber", "ola", "fuel"}},
	{domain.CategoryShopping, []string{"amazon", "flipkart"}},
	{domain.CategorySubscriptions, []string{"netflix", "spotify"}},
}

// Categorize maps a free-text transaction description to a category label.
// Matching is case-insensitive; descriptions matching no rule fall back to
// "others". It never fails.
func Categorize(description string) domain.Category {
	text := strings.ToLower(description)

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryOthers
}
