package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fintrackr/fintrackr/internal/domain"
)

// categoryAmount pairs a category with its month spend for sorting.
type categoryAmount struct {
	category domain.Category
	amount   float64
}

// sortedBreakdown returns the per-category spend sorted by amount descending,
// with the category name as a tie-break so output is deterministic.
func sortedBreakdown(summary map[domain.Category]float64) []categoryAmount {
	breakdown := make([]categoryAmount, 0, len(summary))
	for cat, amount := range summary {
		breakdown = append(breakdown, categoryAmount{category: cat, amount: amount})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].amount != breakdown[j].amount {
			return breakdown[i].amount > breakdown[j].amount
		}
		return breakdown[i].category < breakdown[j].category
	})
	return breakdown
}

// BuildPrompt renders the advisor prompt sent to the text-generation
// backends, embedding the month's aggregated spending.
func BuildPrompt(summary map[domain.Category]float64, totalSpent float64, transactionCount int) string {
	var categories strings.Builder
	for i, entry := range sortedBreakdown(summary) {
		if i > 0 {
			categories.WriteString("\n")
		}
		fmt.Fprintf(&categories, "%s: ₹%.2f", entry.category, entry.amount)
	}

	return fmt.Sprintf(`You are a helpful personal finance advisor. Analyze the following spending data and provide actionable insights.

MONTHLY SPENDING SUMMARY:
Total Spent: ₹%.2f
Number of Transactions: %d

Category Breakdown:
%s

Please provide a comprehensive analysis in the following format:

1. **Spending Overview**: A brief summary of the month's spending patterns (2-3 sentences)

2. **Top Spending Categories**: Identify the top 3 categories where most money was spent

3. **Insights & Recommendations**:
   - Areas where spending can be reduced
   - Suggestions for better financial management
   - Any unusual spending patterns noticed

4. **Savings Goal**: Suggest a realistic monthly savings target based on current spending

Keep the response clear, concise, and actionable. Use bullet points where appropriate. Format numbers with ₹ symbol.`,
		totalSpent, transactionCount, categories.String())
}
