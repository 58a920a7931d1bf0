package services

import (
	"testing"

	"classtrack_go/models"
)

func TestSaveAttendanceReplacesDate(t *testing.T) {
	db := newTestDB(t)

	first := []AttendanceEntry{
		{StudentID: "s1", Status: models.StatusPresent},
		{StudentID: "s2", Status: models.StatusAbsent, Note: "sick"},
	}
	if err := SaveAttendance(1, "2025-03-10", first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SaveAttendance(1, "2025-03-17", []AttendanceEntry{{StudentID: "s1", Status: models.StatusLate}}); err != nil {
		t.Fatalf("save other date: %v", err)
	}

	second := []AttendanceEntry{
		{StudentID: "s2", Status: models.StatusMakeup, Fee: 30000},
	}
	if err := SaveAttendance(1, "2025-03-10", second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var records []models.AttendanceRecord
	if err := db.Where("class_id = ? AND date = ?", 1, "2025-03-10").Find(&records).Error; err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records for 2025-03-10 = %d, want the replacement only", len(records))
	}
	got := records[0]
	if got.StudentID != "s2" || got.Status != models.StatusMakeup || got.Fee != 30000 {
		t.Fatalf("unexpected surviving record %+v", got)
	}

	var other int64
	db.Model(&models.AttendanceRecord{}).Where("class_id = ? AND date = ?", 1, "2025-03-17").Count(&other)
	if other != 1 {
		t.Fatalf("records for 2025-03-17 = %d, want 1 untouched", other)
	}
}

func TestSaveAttendanceEmptyEntriesClearsDate(t *testing.T) {
	db := newTestDB(t)

	if err := SaveAttendance(1, "2025-03-10", []AttendanceEntry{{StudentID: "s1", Status: models.StatusPresent}}); err != nil {
		t.Fatalf("seed save: %v", err)
	}
	if err := SaveAttendance(1, "2025-03-10", nil); err != nil {
		t.Fatalf("clearing save: %v", err)
	}

	var count int64
	db.Model(&models.AttendanceRecord{}).Where("class_id = ? AND date = ?", 1, "2025-03-10").Count(&count)
	if count != 0 {
		t.Fatalf("records after clearing save = %d, want 0", count)
	}
}

func TestSaveAttendanceInvalidInputLeavesStoreUntouched(t *testing.T) {
	db := newTestDB(t)

	if err := SaveAttendance(1, "2025-03-10", []AttendanceEntry{{StudentID: "s1", Status: models.StatusPresent}}); err != nil {
		t.Fatalf("seed save: %v", err)
	}

	if err := SaveAttendance(1, "2025-03-10", []AttendanceEntry{{StudentID: "s1", Status: "vacation"}}); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if err := SaveAttendance(1, "10/03/2025", []AttendanceEntry{{StudentID: "s1", Status: models.StatusPresent}}); err == nil {
		t.Fatal("expected error for malformed date")
	}

	var records []models.AttendanceRecord
	if err := db.Where("class_id = ? AND date = ?", 1, "2025-03-10").Find(&records).Error; err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(records) != 1 || records[0].Status != models.StatusPresent {
		t.Fatalf("seed records changed after rejected saves: %+v", records)
	}
}

func TestFetchTeacherRecordsIsolation(t *testing.T) {
	db := newTestDB(t)

	math := models.Class{ClassName: "Math", TeacherID: "t1", Subject: "math", FeePerSession: 50000}
	piano := models.Class{ClassName: "Piano", TeacherID: "t2", Subject: "music", FeePerSession: 40000}
	if err := db.Create(&math).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	if err := db.Create(&piano).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	if err := SaveAttendance(math.ID, "2025-03-10", []AttendanceEntry{{StudentID: "s1", Status: models.StatusPresent}}); err != nil {
		t.Fatalf("seed attendance: %v", err)
	}
	if err := SaveAttendance(piano.ID, "2025-03-10", []AttendanceEntry{{StudentID: "s9", Status: models.StatusPresent}}); err != nil {
		t.Fatalf("seed attendance: %v", err)
	}

	records, classes, err := FetchTeacherRecords("t1", FilterCriteria{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(classes) != 1 || classes[0].TeacherID != "t1" {
		t.Fatalf("classes = %+v, want only t1's", classes)
	}
	if len(records) != 1 || records[0].StudentID != "s1" {
		t.Fatalf("records = %+v, want only t1's", records)
	}

	// Filtering on another teacher's class cannot reach across the class set.
	records, _, err = FetchTeacherRecords("t1", FilterCriteria{ClassID: piano.ID})
	if err != nil {
		t.Fatalf("fetch with foreign class filter: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("foreign class filter leaked %d records", len(records))
	}

	records, classes, err = FetchTeacherRecords("t3", FilterCriteria{})
	if err != nil {
		t.Fatalf("fetch unknown teacher: %v", err)
	}
	if records != nil || classes != nil {
		t.Fatalf("unknown teacher got records=%v classes=%v, want none", records, classes)
	}
}
