package services

import (
	"errors"
	"time"

	"classtrack_go/database"
	"classtrack_go/models"

	"gorm.io/gorm"
)

// PaymentService maintains the (student, class, month) paid/unpaid index.
// A missing row reads as unpaid; rows are created lazily on first toggle and
// never deleted.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService() *PaymentService {
	return &PaymentService{db: database.DB}
}

// StatusFor returns paid/unpaid for one key. Absent rows read as unpaid.
func (ps *PaymentService) StatusFor(studentID string, classID uint, month string) (string, error) {
	var row models.PaymentStatus
	err := ps.db.Where("student_id = ? AND class_id = ? AND month = ?", studentID, classID, month).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PaymentUnpaid, nil
		}
		return "", err
	}
	return row.Status, nil
}

// StatusesForMonths loads every payment row of one teacher for the given
// months, keyed by studentId_classId_month. Keys with no row are simply
// absent from the map and read as unpaid.
func (ps *PaymentService) StatusesForMonths(teacherID string, months []string) (map[string]string, error) {
	statuses := make(map[string]string)
	if len(months) == 0 {
		return statuses, nil
	}
	var rows []models.PaymentStatus
	if err := ps.db.Where("teacher_id = ? AND month IN ?", teacherID, months).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		statuses[row.Key()] = row.Status
	}
	return statuses, nil
}

// Toggle flips paid<->unpaid for one key and returns the new status. The
// first toggle of a key always lands on paid, since a missing row reads as
// unpaid. Exactly one row is written, attributed to the acting teacher; on a
// write failure the stored state is unchanged and the error is returned so
// callers do not flip their displayed status.
func (ps *PaymentService) Toggle(teacherID, studentID string, classID uint, month string) (string, error) {
	newStatus := ""
	err := ps.db.Transaction(func(tx *gorm.DB) error {
		var row models.PaymentStatus
		err := tx.Where("student_id = ? AND class_id = ? AND month = ?", studentID, classID, month).
			First(&row).Error
		switch {
		case err == nil:
			newStatus = flipPayment(row.Status)
			return tx.Model(&row).Updates(map[string]interface{}{
				"status":     newStatus,
				"teacher_id": teacherID,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			newStatus = models.PaymentPaid
			return tx.Create(&models.PaymentStatus{
				StudentID: studentID,
				ClassID:   classID,
				Month:     month,
				Status:    newStatus,
				TeacherID: teacherID,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	return newStatus, nil
}

// ToggleForWindow toggles the month a [dateFrom, dateTo] filter window maps
// to: the single month it spans, else today's month when inside the window,
// else the window's first month. Returns the targeted month with the new
// status.
func (ps *PaymentService) ToggleForWindow(teacherID, studentID string, classID uint, dateFrom, dateTo string) (string, string, error) {
	months := MonthsInRange(dateFrom, dateTo)
	month := PickToggleMonth(months, CurrentMonth(time.Now()))
	if month == "" {
		return "", "", errors.New("date window does not span any month")
	}
	status, err := ps.Toggle(teacherID, studentID, classID, month)
	if err != nil {
		return "", "", err
	}
	return month, status, nil
}

func flipPayment(status string) string {
	if status == models.PaymentPaid {
		return models.PaymentUnpaid
	}
	return models.PaymentPaid
}
