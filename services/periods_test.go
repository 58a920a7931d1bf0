package services

import (
	"testing"
	"time"
)

func TestMonthsInRange(t *testing.T) {
	tests := []struct {
		name     string
		dateFrom string
		dateTo   string
		exp      []string
	}{
		{
			name:     "same day",
			dateFrom: "2025-01-15",
			dateTo:   "2025-01-15",
			exp:      []string{"2025-01"},
		},
		{
			name:     "within one month",
			dateFrom: "2025-01-01",
			dateTo:   "2025-01-31",
			exp:      []string{"2025-01"},
		},
		{
			name:     "spans a year boundary",
			dateFrom: "2024-11-15",
			dateTo:   "2025-02-01",
			exp:      []string{"2024-11", "2024-12", "2025-01", "2025-02"},
		},
		{
			name:     "end of month to start of next",
			dateFrom: "2025-01-31",
			dateTo:   "2025-02-01",
			exp:      []string{"2025-01", "2025-02"},
		},
		{
			name:     "reversed bounds in same month",
			dateFrom: "2025-01-20",
			dateTo:   "2025-01-05",
			exp:      []string{"2025-01"},
		},
		{
			name:     "reversed bounds across months",
			dateFrom: "2025-03-01",
			dateTo:   "2025-01-31",
			exp:      nil,
		},
		{
			name:     "missing from",
			dateFrom: "",
			dateTo:   "2025-01-31",
			exp:      nil,
		},
		{
			name:     "missing to",
			dateFrom: "2025-01-01",
			dateTo:   "",
			exp:      nil,
		},
		{
			name:     "malformed from",
			dateFrom: "January 1",
			dateTo:   "2025-01-31",
			exp:      nil,
		},
		{
			name:     "malformed to",
			dateFrom: "2025-01-01",
			dateTo:   "31/01/2025",
			exp:      nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := MonthsInRange(tc.dateFrom, tc.dateTo)
			if len(got) != len(tc.exp) {
				t.Fatalf("expected %v, got %v", tc.exp, got)
			}
			for i := range got {
				if got[i] != tc.exp[i] {
					t.Fatalf("expected %v, got %v", tc.exp, got)
				}
			}
		})
	}
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)
	if got := CurrentMonth(now); got != "2025-03" {
		t.Fatalf("expected 2025-03, got %s", got)
	}
}

func TestPickToggleMonth(t *testing.T) {
	tests := []struct {
		name   string
		months []string
		today  string
		exp    string
	}{
		{
			name:   "single month wins regardless of today",
			months: []string{"2025-01"},
			today:  "2025-06",
			exp:    "2025-01",
		},
		{
			name:   "today inside window",
			months: []string{"2025-01", "2025-02", "2025-03"},
			today:  "2025-02",
			exp:    "2025-02",
		},
		{
			name:   "today outside window falls back to first",
			months: []string{"2025-01", "2025-02"},
			today:  "2025-06",
			exp:    "2025-01",
		},
		{
			name:   "empty window",
			months: nil,
			today:  "2025-06",
			exp:    "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := PickToggleMonth(tc.months, tc.today); got != tc.exp {
				t.Fatalf("expected %q, got %q", tc.exp, got)
			}
		})
	}
}
