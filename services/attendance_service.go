package services

import (
	"fmt"
	"time"

	"classtrack_go/database"
	"classtrack_go/models"

	"gorm.io/gorm"
)

// AttendanceEntry is one student's selected status for a session. A student
// with no selection simply has no entry - the control is one optional value
// per student, not independent flags.
type AttendanceEntry struct {
	StudentID string `json:"student_id"`
	Status    string `json:"status"`
	Note      string `json:"note"`
	Fee       int64  `json:"fee"` // makeup override only
}

// SaveAttendance replaces the attendance of (classID, date) with the given
// entries in a single transaction: delete every existing record for the key,
// then insert one record per entry. Either both steps land or neither does,
// so a failure cannot leave the date half-written.
func SaveAttendance(classID uint, date string, entries []AttendanceEntry) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	records := make([]models.AttendanceRecord, 0, len(entries))
	for _, entry := range entries {
		if !IsValidAttendanceStatus(entry.Status) {
			return fmt.Errorf("invalid attendance status %q for student %s", entry.Status, entry.StudentID)
		}
		record := models.AttendanceRecord{
			StudentID: entry.StudentID,
			ClassID:   classID,
			Date:      date,
			Status:    entry.Status,
			Note:      entry.Note,
		}
		// The fee override only means anything for makeup sessions.
		if entry.Status == models.StatusMakeup {
			record.Fee = entry.Fee
		}
		records = append(records, record)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("class_id = ? AND date = ?", classID, date).
			Delete(&models.AttendanceRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

// FetchTeacherRecords loads all attendance records belonging to a teacher's
// classes, applying any database-side filters from the criteria. Records of
// classes the teacher does not own can never appear because the query is
// anchored on the teacher's class set.
func FetchTeacherRecords(teacherID string, criteria FilterCriteria) ([]models.AttendanceRecord, []models.Class, error) {
	var classes []models.Class
	if err := database.DB.Where("teacher_id = ?", teacherID).Find(&classes).Error; err != nil {
		return nil, nil, err
	}
	if len(classes) == 0 {
		return nil, nil, nil
	}

	classIDs := make([]uint, 0, len(classes))
	for _, class := range classes {
		classIDs = append(classIDs, class.ID)
	}

	query := database.DB.Where("class_id IN ?", classIDs)
	if criteria.ClassID != 0 {
		query = query.Where("class_id = ?", criteria.ClassID)
	}
	if criteria.StudentID != "" {
		query = query.Where("student_id = ?", criteria.StudentID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.DateFrom != "" {
		query = query.Where("date >= ?", criteria.DateFrom)
	}
	if criteria.DateTo != "" {
		query = query.Where("date <= ?", criteria.DateTo)
	}

	var records []models.AttendanceRecord
	if err := query.Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, nil, err
	}
	return records, classes, nil
}
