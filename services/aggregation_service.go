package services

import (
	"sort"

	"classtrack_go/models"
)

// StatusCounts tallies records per attendance status.
type StatusCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Excused int `json:"excused"`
	Makeup  int `json:"makeup"`
}

func (sc *StatusCounts) add(status string) {
	switch status {
	case models.StatusPresent:
		sc.Present++
	case models.StatusAbsent:
		sc.Absent++
	case models.StatusLate:
		sc.Late++
	case models.StatusExcused:
		sc.Excused++
	case models.StatusMakeup:
		sc.Makeup++
	}
}

func (sc *StatusCounts) merge(other StatusCounts) {
	sc.Present += other.Present
	sc.Absent += other.Absent
	sc.Late += other.Late
	sc.Excused += other.Excused
	sc.Makeup += other.Makeup
}

// StudentStats aggregates one student's records within one class.
type StudentStats struct {
	ClassID     uint   `json:"class_id"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	StatusCounts
	TotalRecords int   `json:"total_records"`
	TotalFee     int64 `json:"total_fee"`
}

// ClassTotals sums the per-student stats of one class.
type ClassTotals struct {
	ClassID   uint   `json:"class_id"`
	ClassName string `json:"class_name,omitempty"`
	StatusCounts
	TotalRecords int   `json:"total_records"`
	TotalFee     int64 `json:"total_fee"`
	Students     int   `json:"students"`
}

// Summary rolls up counts and fee across a whole record set.
type Summary struct {
	TotalRecords int `json:"total_records"`
	StatusCounts
	TotalFee int64 `json:"total_fee"`
}

// MonthSummary is a Summary bucketed by calendar month.
type MonthSummary struct {
	Month string `json:"month"` // YYYY-MM
	Summary
}

// AggregateStudents groups records by (class, student) and computes counts and
// fee totals. Order is insertion order of first encounter; students without a
// single qualifying record do not appear.
func AggregateStudents(records []models.AttendanceRecord, classes map[uint]*models.Class) []*StudentStats {
	type key struct {
		classID   uint
		studentID string
	}
	index := make(map[key]*StudentStats)
	var out []*StudentStats

	for _, record := range records {
		k := key{record.ClassID, record.StudentID}
		stats, ok := index[k]
		if !ok {
			stats = &StudentStats{ClassID: record.ClassID, StudentID: record.StudentID}
			index[k] = stats
			out = append(out, stats)
		}
		stats.add(record.Status)
		stats.TotalRecords++
		stats.TotalFee += SessionFee(record, classes[record.ClassID])
	}
	return out
}

// AggregateClasses sums per-student stats into per-class totals, keeping the
// order classes first appear in the student stats.
func AggregateClasses(studentStats []*StudentStats, classes map[uint]*models.Class) []*ClassTotals {
	index := make(map[uint]*ClassTotals)
	var out []*ClassTotals

	for _, stats := range studentStats {
		totals, ok := index[stats.ClassID]
		if !ok {
			totals = &ClassTotals{ClassID: stats.ClassID}
			if class := classes[stats.ClassID]; class != nil {
				totals.ClassName = class.ClassName
			}
			index[stats.ClassID] = totals
			out = append(out, totals)
		}
		totals.merge(stats.StatusCounts)
		totals.TotalRecords += stats.TotalRecords
		totals.TotalFee += stats.TotalFee
		totals.Students++
	}
	return out
}

// Summarize rolls the whole record set into one global summary.
func Summarize(records []models.AttendanceRecord, classes map[uint]*models.Class) Summary {
	var summary Summary
	for _, record := range records {
		summary.add(record.Status)
		summary.TotalRecords++
		summary.TotalFee += SessionFee(record, classes[record.ClassID])
	}
	return summary
}

// SummarizeByMonth buckets records by date[:7] and summarizes each bucket,
// ascending by month.
func SummarizeByMonth(records []models.AttendanceRecord, classes map[uint]*models.Class) []MonthSummary {
	buckets := make(map[string]*Summary)
	for _, record := range records {
		if len(record.Date) < 7 {
			continue
		}
		month := record.Date[:7]
		summary, ok := buckets[month]
		if !ok {
			summary = &Summary{}
			buckets[month] = summary
		}
		summary.add(record.Status)
		summary.TotalRecords++
		summary.TotalFee += SessionFee(record, classes[record.ClassID])
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]MonthSummary, 0, len(months))
	for _, month := range months {
		out = append(out, MonthSummary{Month: month, Summary: *buckets[month]})
	}
	return out
}
