// Package budget classifies monthly spending against a budget ceiling and
// generates threshold-based alerts.
package budget

import (
	"fmt"
	"unicode"

	"github.com/fintrackr/fintrackr/internal/domain"
)

// Status classifies spending against a limit.
type Status string

const (
	StatusExceeded Status = "exceeded"
	StatusWarning  Status = "warning"
	StatusSafe     Status = "safe"
)

// Severity grades an alert.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Alert is one human-readable budget notice. Alerts are informational only;
// they never block an operation.
type Alert struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// CalculateStatus classifies total spending against the budget limit.
// Spending exactly at the limit classifies as "warning", not "exceeded";
// only strictly over the limit is "exceeded".
func CalculateStatus(spent, limit float64) Status {
	if spent > limit {
		return StatusExceeded
	}
	if spent >= 0.9*limit {
		return StatusWarning
	}
	return StatusSafe
}

// Alerts builds the alert list for a month: one overall alert at the 100/90/75
// percent thresholds, plus per-category alerts at 100/90 percent for every
// category that has both a configured limit and nonzero spend.
func Alerts(spent, limit float64, categorySpent, categoryLimits map[domain.Category]float64) []Alert {
	alerts := []Alert{}

	percentageUsed := spent / limit * 100
	switch {
	case percentageUsed >= 100:
		alerts = append(alerts, Alert{
			Severity: SeverityDanger,
			Message:  fmt.Sprintf("You have exceeded your budget by ₹%.2f", spent-limit),
		})
	case percentageUsed >= 90:
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("You have used %.1f%% of your budget. Only ₹%.2f remaining.", percentageUsed, limit-spent),
		})
	case percentageUsed >= 75:
		alerts = append(alerts, Alert{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("You have used %.1f%% of your budget.", percentageUsed),
		})
	}

	// Stable category order keeps the alert list deterministic.
	for _, cat := range domain.Categories {
		catLimit, hasLimit := categoryLimits[cat]
		catSpent := categorySpent[cat]
		if !hasLimit || catLimit == 0 || catSpent == 0 {
			continue
		}

		categoryPercentage := catSpent / catLimit * 100
		switch {
		case categoryPercentage >= 100:
			alerts = append(alerts, Alert{
				Severity: SeverityDanger,
				Message:  fmt.Sprintf("%s budget exceeded by ₹%.2f", capitalize(string(cat)), catSpent-catLimit),
			})
		case categoryPercentage >= 90:
			alerts = append(alerts, Alert{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s budget: %.1f%% used", capitalize(string(cat)), categoryPercentage),
			})
		}
	}

	return alerts
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
