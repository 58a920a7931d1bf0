package controllers

import (
	"time"

	"classtrack_go/database"
	"classtrack_go/middleware"
	"classtrack_go/models"
	"classtrack_go/services"
	"classtrack_go/storage"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct{}

// ExportFeeReport streams an xlsx fee report for the active filter window.
// With ?archive=true a copy is also uploaded to S3 and recorded.
func (rc *ReportController) ExportFeeReport(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	criteria := filterFromQuery(c)
	reportService := services.NewReportService()
	data, rowCount, err := reportService.BuildFeeReport(claims.UID, criteria)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}

	fileName := services.ReportFileName(criteria)
	if c.Query("archive") == "true" {
		reportService.ArchiveReport(claims.UID, fileName, criteria, data, rowCount)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	return c.Send(data)
}

// GetReportArchives lists the teacher's archived reports
func (rc *ReportController) GetReportArchives(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var archives []models.ReportArchive
	if err := database.DB.Where("teacher_id = ?", claims.UID).
		Order("created_at DESC").Find(&archives).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch report archives"})
	}

	return c.JSON(fiber.Map{"archives": archives})
}

// DownloadReportArchive returns a time-limited S3 URL for one archive
func (rc *ReportController) DownloadReportArchive(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid archive ID"})
	}

	var archive models.ReportArchive
	if err := database.DB.Where("id = ? AND teacher_id = ?", id, claims.UID).
		First(&archive).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Archive not found"})
	}
	if archive.Status != "completed" || archive.S3Key == "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Archive is not available for download"})
	}

	storageService, err := storage.NewStorageService()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Storage unavailable"})
	}
	url, err := storageService.PresignedURL(archive.S3Key, 15*time.Minute)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate download URL"})
	}

	return c.JSON(fiber.Map{
		"file_name": archive.FileName,
		"url":       url,
	})
}
