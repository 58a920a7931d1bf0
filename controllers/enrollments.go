package controllers

import (
	"strings"
	"time"

	"classtrack_go/database"
	"classtrack_go/middleware"
	"classtrack_go/models"
	"classtrack_go/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EnrollmentController struct{}

// GetEnrollments lists the students of one class
func (ec *EnrollmentController) GetEnrollments(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	classID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}
	class, err := classOwnedBy(claims.UID, classID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	query := database.DB.Where("class_id = ?", classID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("student_name LIKE ? OR student_email LIKE ? OR phone_number LIKE ?", like, like, like)
	}

	var enrollments []models.Enrollment
	if err := query.Order("enrolled_at ASC").Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}

	return c.JSON(fiber.Map{
		"class":       utils.ToClassShort(*class),
		"enrollments": enrollments,
	})
}

// CreateEnrollment invites a student into a class. The student_id stays
// "pending" until the invited student links their own identity; that
// reconciliation happens outside this service.
func (ec *EnrollmentController) CreateEnrollment(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	classID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}
	class, err := classOwnedBy(claims.UID, classID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	var req struct {
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
		PhoneNumber  string `json:"phone_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	req.StudentName = utils.SanitizeString(req.StudentName)
	req.StudentEmail = strings.ToLower(utils.SanitizeString(req.StudentEmail))
	if req.StudentName == "" || req.StudentEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_name and student_email are required"})
	}

	var existing int64
	database.DB.Model(&models.Enrollment{}).
		Where("class_id = ? AND student_email = ?", classID, req.StudentEmail).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Student with this email is already enrolled"})
	}

	enrollment := models.Enrollment{
		StudentID:    models.PendingStudentID,
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		ClassID:      classID,
		PhoneNumber:  utils.SanitizeString(req.PhoneNumber),
		EnrolledAt:   time.Now(),
		Status:       "active",
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		return tx.Model(class).UpdateColumn("total_students", gorm.Expr("total_students + 1")).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll student"})
	}

	middleware.LogActivity(c, "CREATE", "enrollments", enrollment.ID, fiber.Map{"class_id": classID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"enrollment": enrollment})
}

// UpdateEnrollment edits a student's contact details or status
func (ec *EnrollmentController) UpdateEnrollment(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment ID"})
	}

	enrollment, err := enrollmentOwnedBy(claims.UID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
	}

	var req struct {
		StudentName *string `json:"student_name"`
		PhoneNumber *string `json:"phone_number"`
		Status      *string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	updates := map[string]interface{}{}
	if req.StudentName != nil {
		updates["student_name"] = utils.SanitizeString(*req.StudentName)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = utils.SanitizeString(*req.PhoneNumber)
	}
	if req.Status != nil {
		if !utils.IsValidEnrollmentStatus(*req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment status"})
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := database.DB.Model(enrollment).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update enrollment"})
		}
	}

	return c.JSON(fiber.Map{"enrollment": enrollment})
}

// DeleteEnrollment removes a student from a class and keeps the class
// headcount in step within the same transaction.
func (ec *EnrollmentController) DeleteEnrollment(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment ID"})
	}

	enrollment, err := enrollmentOwnedBy(claims.UID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Class{}).
			Where("id = ? AND total_students > 0", enrollment.ClassID).
			UpdateColumn("total_students", gorm.Expr("total_students - 1")).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove student"})
	}

	middleware.LogActivity(c, "DELETE", "enrollments", enrollment.ID, fiber.Map{"class_id": enrollment.ClassID})
	return c.JSON(fiber.Map{"message": "Student removed from class"})
}

// enrollmentOwnedBy loads an enrollment and verifies its class belongs to the teacher.
func enrollmentOwnedBy(teacherID string, enrollmentID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := database.DB.
		Joins("JOIN classes ON classes.id = enrollments.class_id").
		Where("enrollments.id = ? AND classes.teacher_id = ?", enrollmentID, teacherID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}
