package services

import (
	"fmt"
	"strings"
	"time"

	"classtrack_go/config"
	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/services/notifications"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderScheduler runs the monthly unpaid-fee sweep: for every teacher it
// finds student-months that have chargeable attendance but no paid row, and
// raises an in-app notification (plus an optional LINE push).
type ReminderScheduler struct {
	db   *gorm.DB
	cron *cron.Cron
	line *LineMessagingService
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		db:   database.DB,
		cron: cron.New(),
		line: NewLineMessagingService(),
	}
}

// Start registers the cron entry and begins running. The schedule comes from
// REMINDER_CRON (default: 08:00 on the 1st of each month, sweeping the month
// that just ended).
func (rs *ReminderScheduler) Start() {
	spec := config.AppConfig.ReminderCron
	if _, err := rs.cron.AddFunc(spec, func() {
		month := config.AppConfig.ReminderMonth
		if month == "" {
			month = CurrentMonth(time.Now().AddDate(0, -1, 0))
		}
		rs.SweepMonth(month)
	}); err != nil {
		logrus.WithError(err).Errorf("Invalid reminder cron spec %q; reminders disabled", spec)
		return
	}
	rs.cron.Start()
	logrus.Infof("Unpaid-fee reminder scheduler started (spec=%q)", spec)
}

// Stop halts the cron runner.
func (rs *ReminderScheduler) Stop() {
	if rs.cron != nil {
		rs.cron.Stop()
	}
}

// unpaidEntry is one student-month owing a fee.
type unpaidEntry struct {
	ClassID     uint
	ClassName   string
	StudentID   string
	StudentName string
	TotalFee    int64
}

// SweepMonth finds unpaid student-months for every teacher and notifies them.
func (rs *ReminderScheduler) SweepMonth(month string) {
	logrus.Infof("Running unpaid-fee sweep for %s", month)

	var teachers []models.User
	if err := rs.db.Where("role = ? AND status = ?", "teacher", "active").Find(&teachers).Error; err != nil {
		logrus.WithError(err).Error("Reminder sweep: failed to list teachers")
		return
	}

	for _, teacher := range teachers {
		entries, err := rs.unpaidForTeacher(teacher.UID, month)
		if err != nil {
			logrus.WithError(err).Errorf("Reminder sweep failed for teacher %s", teacher.UID)
			continue
		}
		if len(entries) == 0 {
			continue
		}
		rs.notifyTeacher(teacher, month, entries)
	}
}

// unpaidForTeacher aggregates the teacher's chargeable attendance of one
// month and drops every (student, class) that already has a paid row.
func (rs *ReminderScheduler) unpaidForTeacher(teacherUID, month string) ([]unpaidEntry, error) {
	criteria := FilterCriteria{DateFrom: month + "-01", DateTo: month + "-31"}
	records, classes, err := FetchTeacherRecords(teacherUID, criteria)
	if err != nil {
		return nil, err
	}
	classIndex := BuildClassIndex(classes)
	studentStats := AggregateStudents(records, classIndex)

	paid, err := NewPaymentService().StatusesForMonths(teacherUID, []string{month})
	if err != nil {
		return nil, err
	}

	var entries []unpaidEntry
	for _, stats := range studentStats {
		if stats.TotalFee == 0 {
			continue
		}
		if paid[models.PaymentKey(stats.StudentID, stats.ClassID, month)] == models.PaymentPaid {
			continue
		}
		entry := unpaidEntry{
			ClassID:   stats.ClassID,
			StudentID: stats.StudentID,
			TotalFee:  stats.TotalFee,
		}
		if class := classIndex[stats.ClassID]; class != nil {
			entry.ClassName = class.ClassName
		}
		entries = append(entries, entry)
	}

	// Names matter in the reminder text, fetch them in one go
	if len(entries) > 0 {
		classIDs := make([]uint, 0, len(entries))
		for _, e := range entries {
			classIDs = append(classIDs, e.ClassID)
		}
		var enrollments []models.Enrollment
		if err := rs.db.Where("class_id IN ?", classIDs).Find(&enrollments).Error; err == nil {
			names := make(map[string]string, len(enrollments))
			for _, e := range enrollments {
				names[models.PaymentKey(e.StudentID, e.ClassID, "")] = e.StudentName
			}
			for i := range entries {
				entries[i].StudentName = names[models.PaymentKey(entries[i].StudentID, entries[i].ClassID, "")]
			}
		}
	}
	return entries, nil
}

func (rs *ReminderScheduler) notifyTeacher(teacher models.User, month string, entries []unpaidEntry) {
	var total int64
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		total += entry.TotalFee
		name := entry.StudentName
		if name == "" {
			name = entry.StudentID
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %d", name, entry.ClassName, entry.TotalFee))
	}

	title := fmt.Sprintf("Unpaid fees for %s", month)
	message := fmt.Sprintf("%d student(s) owe a total of %d for %s:\n%s",
		len(entries), total, month, strings.Join(lines, "\n"))

	svc := notifications.NewService()
	if err := svc.EnqueueOrCreate([]uint{teacher.ID}, notifications.Queued(title, message, "warning")); err != nil {
		logrus.WithError(err).Errorf("Failed to create reminder notification for teacher %s", teacher.UID)
		return
	}

	if groupID := config.AppConfig.LineGroupID; groupID != "" {
		if err := rs.line.SendMessageToGroup(groupID, title+"\n"+message); err != nil {
			logrus.WithError(err).Warn("LINE reminder push failed")
		}
	}

	logrus.Infof("Sent unpaid-fee reminder to teacher %s (%d entries)", teacher.UID, len(entries))
}
