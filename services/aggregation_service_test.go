package services

import (
	"testing"

	"classtrack_go/models"
)

func record(classID uint, studentID, date, status string, fee int64) models.AttendanceRecord {
	return models.AttendanceRecord{
		ClassID:   classID,
		StudentID: studentID,
		Date:      date,
		Status:    status,
		Fee:       fee,
	}
}

func TestAggregateStudentsOneOfEachStatus(t *testing.T) {
	classes := BuildClassIndex([]models.Class{
		{BaseModel: models.BaseModel{ID: 1}, FeePerSession: 500000},
	})
	records := []models.AttendanceRecord{
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
		record(1, "s1", "2025-01-13", models.StatusLate, 0),
		record(1, "s1", "2025-01-20", models.StatusAbsent, 0),
		record(1, "s1", "2025-01-27", models.StatusExcused, 0),
		record(1, "s1", "2025-02-03", models.StatusMakeup, 300000),
	}

	stats := AggregateStudents(records, classes)
	if len(stats) != 1 {
		t.Fatalf("expected 1 student, got %d", len(stats))
	}

	s := stats[0]
	if s.TotalFee != 1800000 {
		t.Fatalf("expected total fee 1800000, got %d", s.TotalFee)
	}
	if s.TotalRecords != 5 {
		t.Fatalf("expected 5 records, got %d", s.TotalRecords)
	}
	if s.Present != 1 || s.Late != 1 || s.Absent != 1 || s.Excused != 1 || s.Makeup != 1 {
		t.Fatalf("unexpected status counts: %+v", s.StatusCounts)
	}
}

func TestAggregateStudentsInsertionOrder(t *testing.T) {
	classes := BuildClassIndex([]models.Class{
		{BaseModel: models.BaseModel{ID: 1}, FeePerSession: 100},
		{BaseModel: models.BaseModel{ID: 2}, FeePerSession: 200},
	})
	records := []models.AttendanceRecord{
		record(1, "s2", "2025-01-06", models.StatusPresent, 0),
		record(2, "s1", "2025-01-06", models.StatusPresent, 0),
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
		record(1, "s2", "2025-01-13", models.StatusLate, 0),
	}

	stats := AggregateStudents(records, classes)
	if len(stats) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(stats))
	}

	expected := []struct {
		classID   uint
		studentID string
	}{
		{1, "s2"},
		{2, "s1"},
		{1, "s1"},
	}
	for i, exp := range expected {
		if stats[i].ClassID != exp.classID || stats[i].StudentID != exp.studentID {
			t.Fatalf("position %d: expected (%d,%s), got (%d,%s)",
				i, exp.classID, exp.studentID, stats[i].ClassID, stats[i].StudentID)
		}
	}
}

func TestAggregateStudentsOmitsStudentsWithoutRecords(t *testing.T) {
	classes := BuildClassIndex([]models.Class{
		{BaseModel: models.BaseModel{ID: 1}, FeePerSession: 100},
	})

	stats := AggregateStudents(nil, classes)
	if len(stats) != 0 {
		t.Fatalf("expected no groups for empty input, got %d", len(stats))
	}
}

func TestAggregateStudentsSumsDuplicates(t *testing.T) {
	classes := BuildClassIndex([]models.Class{
		{BaseModel: models.BaseModel{ID: 1}, FeePerSession: 100},
	})
	// Same (student, class, date) twice; both contribute.
	records := []models.AttendanceRecord{
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
	}

	stats := AggregateStudents(records, classes)
	if len(stats) != 1 {
		t.Fatalf("expected 1 group, got %d", len(stats))
	}
	if stats[0].TotalRecords != 2 || stats[0].TotalFee != 200 {
		t.Fatalf("expected duplicates summed, got records=%d fee=%d",
			stats[0].TotalRecords, stats[0].TotalFee)
	}
}

func TestAggregateClasses(t *testing.T) {
	classes := BuildClassIndex([]models.Class{
		{BaseModel: models.BaseModel{ID: 1}, ClassName: "English A1", FeePerSession: 100},
		{BaseModel: models.BaseModel{ID: 2}, ClassName: "Math M3", FeePerSession: 200},
	})
	records := []models.AttendanceRecord{
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
		record(1, "s2", "2025-01-06", models.StatusAbsent, 0),
		record(2, "s1", "2025-01-07", models.StatusExcused, 0),
	}

	totals := AggregateClasses(AggregateStudents(records, classes), classes)
	if len(totals) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(totals))
	}

	first := totals[0]
	if first.ClassID != 1 || first.ClassName != "English A1" {
		t.Fatalf("unexpected first class: %+v", first)
	}
	if first.Students != 2 || first.TotalRecords != 2 || first.TotalFee != 200 {
		t.Fatalf("unexpected class 1 totals: %+v", first)
	}

	second := totals[1]
	if second.ClassID != 2 || second.Students != 1 || second.TotalFee != 0 {
		t.Fatalf("unexpected class 2 totals: %+v", second)
	}
}

func TestSummarizeMatchesPerStudentSum(t *testing.T) {
	classes := BuildClassIndex([]models.Class{
		{BaseModel: models.BaseModel{ID: 1}, FeePerSession: 100},
		{BaseModel: models.BaseModel{ID: 2}, FeePerSession: 250},
	})
	records := []models.AttendanceRecord{
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
		record(1, "s2", "2025-01-06", models.StatusLate, 0),
		record(2, "s1", "2025-01-07", models.StatusMakeup, 0),
		record(2, "s3", "2025-01-08", models.StatusExcused, 0),
		record(1, "s1", "2025-02-03", models.StatusAbsent, 0),
	}

	summary := Summarize(records, classes)
	if summary.TotalRecords != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), summary.TotalRecords)
	}

	var perStudent int64
	for _, s := range AggregateStudents(records, classes) {
		perStudent += s.TotalFee
	}
	if summary.TotalFee != perStudent {
		t.Fatalf("global fee %d does not match per-student sum %d", summary.TotalFee, perStudent)
	}
}

func TestSummarizeByMonth(t *testing.T) {
	classes := BuildClassIndex([]models.Class{
		{BaseModel: models.BaseModel{ID: 1}, FeePerSession: 100},
	})
	records := []models.AttendanceRecord{
		record(1, "s1", "2025-02-03", models.StatusPresent, 0),
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
		record(1, "s1", "2025-01-13", models.StatusExcused, 0),
		record(1, "s1", "2024-12-30", models.StatusLate, 0),
	}

	months := SummarizeByMonth(records, classes)
	if len(months) != 3 {
		t.Fatalf("expected 3 months, got %d", len(months))
	}

	expOrder := []string{"2024-12", "2025-01", "2025-02"}
	for i, exp := range expOrder {
		if months[i].Month != exp {
			t.Fatalf("position %d: expected %s, got %s", i, exp, months[i].Month)
		}
	}

	jan := months[1]
	if jan.TotalRecords != 2 || jan.TotalFee != 100 {
		t.Fatalf("unexpected January summary: %+v", jan)
	}
}

func TestSummarizeByMonthSkipsShortDates(t *testing.T) {
	classes := BuildClassIndex([]models.Class{
		{BaseModel: models.BaseModel{ID: 1}, FeePerSession: 100},
	})
	records := []models.AttendanceRecord{
		record(1, "s1", "bad", models.StatusPresent, 0),
		record(1, "s1", "2025-01-06", models.StatusPresent, 0),
	}

	months := SummarizeByMonth(records, classes)
	if len(months) != 1 || months[0].Month != "2025-01" {
		t.Fatalf("expected only 2025-01 bucket, got %+v", months)
	}
}
