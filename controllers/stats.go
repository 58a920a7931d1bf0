package controllers

import (
	"classtrack_go/database"
	"classtrack_go/middleware"
	"classtrack_go/models"
	"classtrack_go/services"

	"github.com/gofiber/fiber/v2"
)

type StatsController struct{}

// loadFilteredStats fetches the teacher's filtered record set plus the class
// index every aggregate view derives from.
func loadFilteredStats(c *fiber.Ctx) ([]models.AttendanceRecord, map[uint]*models.Class, services.FilterCriteria, error) {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return nil, nil, services.FilterCriteria{}, err
	}
	criteria := filterFromQuery(c)
	records, classes, err := services.FetchTeacherRecords(claims.UID, criteria)
	if err != nil {
		return nil, nil, criteria, err
	}
	return records, services.BuildClassIndex(classes), criteria, nil
}

// attachStudentNames fills display names from the enrollment rows of the
// classes that appear in the stats.
func attachStudentNames(stats []*services.StudentStats) {
	if len(stats) == 0 {
		return
	}
	classIDs := make([]uint, 0, len(stats))
	seen := map[uint]bool{}
	for _, s := range stats {
		if !seen[s.ClassID] {
			seen[s.ClassID] = true
			classIDs = append(classIDs, s.ClassID)
		}
	}

	var enrollments []models.Enrollment
	if err := database.DB.Where("class_id IN ?", classIDs).Find(&enrollments).Error; err != nil {
		return // names are display sugar; stats stay correct without them
	}
	names := make(map[string]string, len(enrollments))
	for _, e := range enrollments {
		names[models.PaymentKey(e.StudentID, e.ClassID, "")] = e.StudentName
	}
	for _, s := range stats {
		s.StudentName = names[models.PaymentKey(s.StudentID, s.ClassID, "")]
	}
}

// GetStudentStats returns per-student-per-class counts and fee totals
func (sc *StatsController) GetStudentStats(c *fiber.Ctx) error {
	records, classIndex, criteria, err := loadFilteredStats(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute statistics"})
	}

	stats := services.AggregateStudents(records, classIndex)
	attachStudentNames(stats)

	return c.JSON(fiber.Map{
		"filter":   criteria,
		"students": stats,
	})
}

// GetClassTotals returns per-class roll-ups of the filtered set
func (sc *StatsController) GetClassTotals(c *fiber.Ctx) error {
	records, classIndex, criteria, err := loadFilteredStats(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute statistics"})
	}

	studentStats := services.AggregateStudents(records, classIndex)
	totals := services.AggregateClasses(studentStats, classIndex)

	return c.JSON(fiber.Map{
		"filter":  criteria,
		"classes": totals,
	})
}

// GetSummary returns the global roll-up of the filtered set
func (sc *StatsController) GetSummary(c *fiber.Ctx) error {
	records, classIndex, criteria, err := loadFilteredStats(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute statistics"})
	}

	return c.JSON(fiber.Map{
		"filter":  criteria,
		"summary": services.Summarize(records, classIndex),
	})
}

// GetMonthlySummary returns per-month roll-ups of the filtered set
func (sc *StatsController) GetMonthlySummary(c *fiber.Ctx) error {
	records, classIndex, criteria, err := loadFilteredStats(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute statistics"})
	}

	return c.JSON(fiber.Map{
		"filter": criteria,
		"months": services.SummarizeByMonth(records, classIndex),
	})
}
