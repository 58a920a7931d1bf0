package services

import (
	"testing"

	"classtrack_go/models"
)

func TestSessionFee(t *testing.T) {
	class := &models.Class{FeePerSession: 500000}

	tests := []struct {
		name   string
		record models.AttendanceRecord
		class  *models.Class
		exp    int64
	}{
		{
			name:   "present charges class default",
			record: models.AttendanceRecord{Status: models.StatusPresent},
			class:  class,
			exp:    500000,
		},
		{
			name:   "late charges class default",
			record: models.AttendanceRecord{Status: models.StatusLate},
			class:  class,
			exp:    500000,
		},
		{
			name:   "absent still charges class default",
			record: models.AttendanceRecord{Status: models.StatusAbsent},
			class:  class,
			exp:    500000,
		},
		{
			name:   "excused charges nothing",
			record: models.AttendanceRecord{Status: models.StatusExcused},
			class:  class,
			exp:    0,
		},
		{
			name:   "excused ignores record fee",
			record: models.AttendanceRecord{Status: models.StatusExcused, Fee: 300000},
			class:  class,
			exp:    0,
		},
		{
			name:   "makeup uses own fee when set",
			record: models.AttendanceRecord{Status: models.StatusMakeup, Fee: 300000},
			class:  class,
			exp:    300000,
		},
		{
			name:   "makeup falls back to class default",
			record: models.AttendanceRecord{Status: models.StatusMakeup},
			class:  class,
			exp:    500000,
		},
		{
			name:   "nil class charges nothing",
			record: models.AttendanceRecord{Status: models.StatusPresent},
			class:  nil,
			exp:    0,
		},
		{
			name:   "nil class makeup still uses own fee",
			record: models.AttendanceRecord{Status: models.StatusMakeup, Fee: 250000},
			class:  nil,
			exp:    250000,
		},
		{
			name:   "unknown status charges class default",
			record: models.AttendanceRecord{Status: "unknown"},
			class:  class,
			exp:    500000,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := SessionFee(tc.record, tc.class)
			if got != tc.exp {
				t.Fatalf("expected fee %d, got %d", tc.exp, got)
			}
		})
	}
}

func TestBuildClassIndex(t *testing.T) {
	classes := []models.Class{
		{BaseModel: models.BaseModel{ID: 1}, FeePerSession: 100},
		{BaseModel: models.BaseModel{ID: 2}, FeePerSession: 200},
	}

	index := BuildClassIndex(classes)
	if len(index) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(index))
	}
	if index[1].FeePerSession != 100 || index[2].FeePerSession != 200 {
		t.Fatalf("index returned wrong classes: %+v", index)
	}
	if index[99] != nil {
		t.Fatalf("expected nil for unknown class")
	}
}

func TestIsValidAttendanceStatus(t *testing.T) {
	valid := []string{
		models.StatusPresent,
		models.StatusAbsent,
		models.StatusLate,
		models.StatusExcused,
		models.StatusMakeup,
	}
	for _, s := range valid {
		if !IsValidAttendanceStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "Present", "sick", "paid"} {
		if IsValidAttendanceStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestIsChargeableStatus(t *testing.T) {
	if IsChargeableStatus(models.StatusExcused) {
		t.Fatalf("excused must not be chargeable")
	}
	for _, s := range []string{models.StatusPresent, models.StatusAbsent, models.StatusLate, models.StatusMakeup} {
		if !IsChargeableStatus(s) {
			t.Fatalf("expected %q to be chargeable", s)
		}
	}
}
