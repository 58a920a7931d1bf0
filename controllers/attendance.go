package controllers

import (
	"strconv"

	"classtrack_go/database"
	"classtrack_go/middleware"
	"classtrack_go/models"
	"classtrack_go/services"

	"github.com/gofiber/fiber/v2"
)

type AttendanceController struct{}

// filterFromQuery builds the immutable filter criteria from query params.
func filterFromQuery(c *fiber.Ctx) services.FilterCriteria {
	criteria := services.FilterCriteria{
		StudentID: c.Query("student_id"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Status:    c.Query("status"),
	}
	if classID, err := strconv.ParseUint(c.Query("class_id"), 10, 32); err == nil {
		criteria.ClassID = uint(classID)
	}
	return criteria
}

// SaveAttendance replaces the attendance of (class, date) with the submitted
// per-student statuses. Students without a selected status are omitted and
// end up with no record for that date.
func (ac *AttendanceController) SaveAttendance(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	classID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}
	if _, err := classOwnedBy(claims.UID, classID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	var req struct {
		Date    string                     `json:"date"`
		Entries []services.AttendanceEntry `json:"entries"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	if err := services.SaveAttendance(classID, req.Date, req.Entries); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	middleware.LogActivity(c, "CREATE", "attendance", classID, fiber.Map{
		"date":    req.Date,
		"entries": len(req.Entries),
	})
	return c.JSON(fiber.Map{
		"message": "Attendance saved",
		"date":    req.Date,
		"records": len(req.Entries),
	})
}

// GetAttendanceByDate returns the records of one class on one date
func (ac *AttendanceController) GetAttendanceByDate(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	classID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}
	if _, err := classOwnedBy(claims.UID, classID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date query parameter is required"})
	}

	var records []models.AttendanceRecord
	if err := database.DB.Where("class_id = ? AND date = ?", classID, date).
		Order("id ASC").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{"date": date, "records": records})
}

// GetAttendanceRecords returns the teacher's records under the active filter
func (ac *AttendanceController) GetAttendanceRecords(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	criteria := filterFromQuery(c)
	records, _, err := services.FetchTeacherRecords(claims.UID, criteria)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
	}

	return c.JSON(fiber.Map{
		"filter":  criteria,
		"records": records,
	})
}
