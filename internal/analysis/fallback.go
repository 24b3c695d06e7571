package analysis

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fintrackr/fintrackr/internal/domain"
)

// fallbackNote is appended to locally generated summaries so the record is
// identifiable as non-AI output.
const fallbackNote = "*Note: AI analysis unavailable. This is a basic analysis generated from your spending data.*"

// fallbackSummary synthesizes a deterministic spending summary from the
// aggregates. It is the terminal step of the generation chain and cannot
// fail given a non-empty summary.
func fallbackSummary(summary map[domain.Category]float64, totalSpent float64, transactionCount int) string {
	breakdown := sortedBreakdown(summary)
	top := breakdown
	if len(top) > 3 {
		top = top[:3]
	}

	var topLines strings.Builder
	for i, entry := range top {
		if i > 0 {
			topLines.WriteString("\n")
		}
		fmt.Fprintf(&topLines, "%d. %s: ₹%.2f", i+1, capitalize(string(entry.category)), entry.amount)
	}

	highest := breakdown[0]

	return fmt.Sprintf(`**Spending Overview:**
You spent a total of ₹%.2f across %d transactions this month.

**Top Spending Categories:**
%s

**Insights & Recommendations:**
- Your highest spending category is %s (₹%.2f)
- Consider reviewing expenses in this category to identify potential savings
- Track your spending patterns to better manage your budget

**Savings Goal:**
Based on your current spending, consider setting a savings goal of 10-20%% of your monthly income. This would help build an emergency fund and achieve long-term financial goals.`,
		totalSpent, transactionCount, topLines.String(), highest.category, highest.amount)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
