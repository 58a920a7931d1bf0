package controllers

import (
	"errors"
	"strconv"

	"classtrack_go/database"
	"classtrack_go/middleware"
	"classtrack_go/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ClassController struct{}

// classOwnedBy loads a class and verifies the teacher owns it.
func classOwnedBy(teacherID string, classID uint) (*models.Class, error) {
	var class models.Class
	if err := database.DB.Where("id = ? AND teacher_id = ?", classID, teacherID).First(&class).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// GetClasses returns the authenticated teacher's classes
func (cc *ClassController) GetClasses(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	query := database.DB.Where("teacher_id = ?", claims.UID)
	if active := c.Query("is_active"); active == "true" {
		query = query.Where("is_active = ?", true)
	} else if active == "false" {
		query = query.Where("is_active = ?", false)
	}

	var classes []models.Class
	if err := query.Order("created_at DESC").Find(&classes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch classes",
		})
	}

	return c.JSON(fiber.Map{"classes": classes})
}

// GetClass returns a specific class by ID
func (cc *ClassController) GetClass(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}

	class, err := classOwnedBy(claims.UID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	return c.JSON(fiber.Map{"class": class})
}

// CreateClass creates a class owned by the authenticated teacher
func (cc *ClassController) CreateClass(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		ClassName     string `json:"class_name"`
		Subject       string `json:"subject"`
		FeePerSession int64  `json:"fee_per_session"`
		Description   string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.ClassName == "" || req.Subject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "class_name and subject are required"})
	}
	// The per-session fee is validated here once; downstream fee math trusts it.
	if req.FeePerSession <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fee_per_session must be a positive number"})
	}

	user, _ := middleware.GetCurrentUser(c)
	class := models.Class{
		ClassName:     req.ClassName,
		TeacherID:     claims.UID,
		Subject:       req.Subject,
		FeePerSession: req.FeePerSession,
		Description:   req.Description,
		IsActive:      true,
	}
	if user != nil {
		class.TeacherName = user.DisplayName
	}

	if err := database.DB.Create(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}

	middleware.LogActivity(c, "CREATE", "classes", class.ID, fiber.Map{"class_name": class.ClassName})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"class": class})
}

// UpdateClass updates class fields owned by the teacher
func (cc *ClassController) UpdateClass(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}

	class, err := classOwnedBy(claims.UID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	var req struct {
		ClassName     *string `json:"class_name"`
		Subject       *string `json:"subject"`
		FeePerSession *int64  `json:"fee_per_session"`
		Description   *string `json:"description"`
		IsActive      *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	updates := map[string]interface{}{}
	if req.ClassName != nil {
		updates["class_name"] = *req.ClassName
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.FeePerSession != nil {
		if *req.FeePerSession <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fee_per_session must be a positive number"})
		}
		updates["fee_per_session"] = *req.FeePerSession
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB.Model(class).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
		}
	}

	return c.JSON(fiber.Map{"class": class})
}

// DeleteClass removes a class together with its enrollments and attendance.
// The cascade runs in one transaction so a partial delete cannot strand rows.
func (cc *ClassController) DeleteClass(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}

	class, err := classOwnedBy(claims.UID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load class"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", class.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", class.ID).Delete(&models.AttendanceRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(class).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete class"})
	}

	middleware.LogActivity(c, "DELETE", "classes", class.ID, nil)
	return c.JSON(fiber.Map{"message": "Class deleted successfully"})
}
