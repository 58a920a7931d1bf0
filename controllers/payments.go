package controllers

import (
	"regexp"

	"classtrack_go/middleware"
	"classtrack_go/services"

	"github.com/gofiber/fiber/v2"
)

type PaymentController struct{}

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// GetPaymentStatuses returns the teacher's paid/unpaid map for the months a
// date window spans, keyed by studentId_classId_month. Keys with no entry
// read as unpaid.
func (pc *PaymentController) GetPaymentStatuses(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	months := services.MonthsInRange(c.Query("date_from"), c.Query("date_to"))
	if len(months) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_from and date_to must be valid YYYY-MM-DD dates"})
	}

	statuses, err := services.NewPaymentService().StatusesForMonths(claims.UID, months)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payment statuses"})
	}

	return c.JSON(fiber.Map{
		"months":   months,
		"statuses": statuses,
	})
}

// TogglePaymentMonth flips paid/unpaid for one (student, class, month). The
// response carries the stored status; clients update their display only from
// a successful response.
func (pc *PaymentController) TogglePaymentMonth(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		StudentID string `json:"student_id"`
		ClassID   uint   `json:"class_id"`
		Month     string `json:"month"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.StudentID == "" || req.ClassID == 0 || !monthPattern.MatchString(req.Month) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id, class_id and month (YYYY-MM) are required"})
	}
	if _, err := classOwnedBy(claims.UID, req.ClassID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	status, err := services.NewPaymentService().Toggle(claims.UID, req.StudentID, req.ClassID, req.Month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment status"})
	}

	middleware.LogActivity(c, "UPDATE", "payments", req.ClassID, fiber.Map{
		"student_id": req.StudentID,
		"month":      req.Month,
		"status":     status,
	})
	return c.JSON(fiber.Map{
		"student_id": req.StudentID,
		"class_id":   req.ClassID,
		"month":      req.Month,
		"status":     status,
	})
}

// TogglePaymentWindow flips the month the active date window maps to: the
// single spanned month, else the current month when inside the window, else
// the window's first month.
func (pc *PaymentController) TogglePaymentWindow(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		StudentID string `json:"student_id"`
		ClassID   uint   `json:"class_id"`
		DateFrom  string `json:"date_from"`
		DateTo    string `json:"date_to"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.StudentID == "" || req.ClassID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id and class_id are required"})
	}
	if _, err := classOwnedBy(claims.UID, req.ClassID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	month, status, err := services.NewPaymentService().ToggleForWindow(claims.UID, req.StudentID, req.ClassID, req.DateFrom, req.DateTo)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	middleware.LogActivity(c, "UPDATE", "payments", req.ClassID, fiber.Map{
		"student_id": req.StudentID,
		"month":      month,
		"status":     status,
	})
	return c.JSON(fiber.Map{
		"student_id": req.StudentID,
		"class_id":   req.ClassID,
		"month":      month,
		"status":     status,
	})
}
