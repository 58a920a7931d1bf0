package services

import (
	"classtrack_go/models"
)

// FilterCriteria is an immutable description of the active view filters.
// Empty fields do not constrain. Dates compare lexicographically since both
// sides are YYYY-MM-DD.
type FilterCriteria struct {
	ClassID   uint   `json:"class_id,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	DateFrom  string `json:"date_from,omitempty"`
	DateTo    string `json:"date_to,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Apply returns the records matching the criteria, preserving input order.
func (f FilterCriteria) Apply(records []models.AttendanceRecord) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, 0, len(records))
	for _, record := range records {
		if f.ClassID != 0 && record.ClassID != f.ClassID {
			continue
		}
		if f.StudentID != "" && record.StudentID != f.StudentID {
			continue
		}
		if f.Status != "" && record.Status != f.Status {
			continue
		}
		if f.DateFrom != "" && record.Date < f.DateFrom {
			continue
		}
		if f.DateTo != "" && record.Date > f.DateTo {
			continue
		}
		out = append(out, record)
	}
	return out
}
