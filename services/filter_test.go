package services

import (
	"testing"

	"classtrack_go/models"
)

func TestFilterCriteriaApply(t *testing.T) {
	records := []models.AttendanceRecord{
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
		record(1, "s2", "2025-01-13", models.StatusAbsent, 0),
		record(2, "s1", "2025-01-20", models.StatusLate, 0),
		record(1, "s1", "2025-02-03", models.StatusPresent, 0),
	}

	tests := []struct {
		name     string
		criteria FilterCriteria
		exp      int
	}{
		{
			name:     "empty criteria keeps everything",
			criteria: FilterCriteria{},
			exp:      4,
		},
		{
			name:     "by class",
			criteria: FilterCriteria{ClassID: 1},
			exp:      3,
		},
		{
			name:     "by student",
			criteria: FilterCriteria{StudentID: "s1"},
			exp:      3,
		},
		{
			name:     "by status",
			criteria: FilterCriteria{Status: models.StatusPresent},
			exp:      2,
		},
		{
			name:     "date window inclusive bounds",
			criteria: FilterCriteria{DateFrom: "2025-01-06", DateTo: "2025-01-20"},
			exp:      3,
		},
		{
			name:     "combined filters",
			criteria: FilterCriteria{ClassID: 1, StudentID: "s1", Status: models.StatusPresent},
			exp:      2,
		},
		{
			name:     "no match",
			criteria: FilterCriteria{ClassID: 99},
			exp:      0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := tc.criteria.Apply(records)
			if len(got) != tc.exp {
				t.Fatalf("expected %d records, got %d", tc.exp, len(got))
			}
		})
	}
}

func TestFilterCriteriaPreservesOrder(t *testing.T) {
	records := []models.AttendanceRecord{
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
		record(1, "s1", "2025-01-13", models.StatusPresent, 0),
		record(1, "s1", "2025-01-20", models.StatusPresent, 0),
	}

	got := FilterCriteria{StudentID: "s1"}.Apply(records)
	for i := 1; i < len(got); i++ {
		if got[i-1].Date > got[i].Date {
			t.Fatalf("order not preserved: %s before %s", got[i-1].Date, got[i].Date)
		}
	}
}
