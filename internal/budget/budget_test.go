package budget

import (
	"strings"
	"testing"

	"github.com/fintrackr/fintrackr/internal/domain"
)

func TestCalculateStatus(t *testing.T) {
	tests := []struct {
		name  string
		spent float64
		limit float64
		want  Status
	}{
		{name: "well under budget", spent: 50, limit: 100, want: StatusSafe},
		{name: "just under warning threshold", spent: 89.99, limit: 100, want: StatusSafe},
		{name: "at warning threshold", spent: 90, limit: 100, want: StatusWarning},
		{name: "exactly at the limit", spent: 100, limit: 100, want: StatusWarning},
		{name: "just over the limit", spent: 100.01, limit: 100, want: StatusExceeded},
		{name: "far over the limit", spent: 250, limit: 100, want: StatusExceeded},
		{name: "zero spend", spent: 0, limit: 100, want: StatusSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatus(tt.spent, tt.limit)
			if got != tt.want {
				t.Errorf("CalculateStatus(%v, %v) = %q, want %q", tt.spent, tt.limit, got, tt.want)
			}
		})
	}
}

func TestAlerts_OverallThresholds(t *testing.T) {
	tests := []struct {
		name         string
		spent        float64
		limit        float64
		wantCount    int
		wantSeverity Severity
		wantContains string
	}{
		{
			name:         "exceeded",
			spent:        5500,
			limit:        5000,
			wantCount:    1,
			wantSeverity: SeverityDanger,
			wantContains: "exceeded your budget by ₹500.00",
		},
		{
			name:         "ninety percent",
			spent:        4600,
			limit:        5000,
			wantCount:    1,
			wantSeverity: SeverityWarning,
			wantContains: "92.0% of your budget",
		},
		{
			name:         "seventy five percent",
			spent:        4000,
			limit:        5000,
			wantCount:    1,
			wantSeverity: SeverityInfo,
			wantContains: "80.0% of your budget",
		},
		{
			name:      "below every threshold",
			spent:     1000,
			limit:     5000,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := Alerts(tt.spent, tt.limit, nil, nil)
			if len(alerts) != tt.wantCount {
				t.Fatalf("Alerts() returned %d alerts, want %d: %+v", len(alerts), tt.wantCount, alerts)
			}
			if tt.wantCount == 0 {
				return
			}
			if alerts[0].Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", alerts[0].Severity, tt.wantSeverity)
			}
			if !strings.Contains(alerts[0].Message, tt.wantContains) {
				t.Errorf("Message = %q, should contain %q", alerts[0].Message, tt.wantContains)
			}
		})
	}
}

func TestAlerts_CategoryThresholds(t *testing.T) {
	categorySpent := map[domain.Category]float64{
		domain.CategoryFood:      1100, // over its limit
		domain.CategoryTransport: 470,  // 94% of its limit
		domain.CategoryShopping:  100,  // well under
	}
	categoryLimits := map[domain.Category]float64{
		domain.CategoryFood:      1000,
		domain.CategoryTransport: 500,
		domain.CategoryShopping:  2000,
		domain.CategoryRent:      8000, // no spend, must not alert
	}

	// Overall spend below 75% so only category alerts fire.
	alerts := Alerts(1670, 20000, categorySpent, categoryLimits)
	if len(alerts) != 2 {
		t.Fatalf("Alerts() returned %d alerts, want 2: %+v", len(alerts), alerts)
	}

	// Category alerts come out in the fixed category order: food before
	// transport.
	if alerts[0].Severity != SeverityDanger || !strings.Contains(alerts[0].Message, "Food budget exceeded by ₹100.00") {
		t.Errorf("first alert = %+v, want food danger", alerts[0])
	}
	if alerts[1].Severity != SeverityWarning || !strings.Contains(alerts[1].Message, "Transport budget: 94.0% used") {
		t.Errorf("second alert = %+v, want transport warning", alerts[1])
	}
}

func TestAlerts_ZeroCategoryLimitIgnored(t *testing.T) {
	alerts := Alerts(100, 10000,
		map[domain.Category]float64{domain.CategoryFood: 100},
		map[domain.Category]float64{domain.CategoryFood: 0},
	)
	if len(alerts) != 0 {
		t.Errorf("Alerts() = %+v, want none for a zero category limit", alerts)
	}
}

func TestAlerts_EmptyListIsNotNil(t *testing.T) {
	alerts := Alerts(0, 1000, nil, nil)
	if alerts == nil {
		t.Error("Alerts() returned nil, want empty slice")
	}
}
