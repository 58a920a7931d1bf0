package routes

import (
	"classtrack_go/controllers"
	"classtrack_go/middleware"
	"classtrack_go/services/websocket"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, wsHub *websocket.Hub) {
	classController := &controllers.ClassController{}
	enrollmentController := &controllers.EnrollmentController{}
	attendanceController := &controllers.AttendanceController{}
	statsController := &controllers.StatsController{}
	paymentController := &controllers.PaymentController{}
	reportController := &controllers.ReportController{}
	notificationController := &controllers.NotificationController{}
	logController := &controllers.LogController{}
	wsController := controllers.NewWebSocketController(wsHub)

	// API group
	api := app.Group("/api")

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware())

	// Class management routes
	classes := protected.Group("/classes", middleware.RequireTeacher())
	classes.Get("/", classController.GetClasses)
	classes.Post("/", classController.CreateClass)
	classes.Get("/:id", classController.GetClass)
	classes.Put("/:id", classController.UpdateClass)
	classes.Delete("/:id", classController.DeleteClass)

	// Enrollment routes nested under a class
	classes.Get("/:id/students", enrollmentController.GetEnrollments)
	classes.Post("/:id/students", enrollmentController.CreateEnrollment)

	// Attendance per class and date
	classes.Post("/:id/attendance", attendanceController.SaveAttendance)
	classes.Get("/:id/attendance", attendanceController.GetAttendanceByDate)

	// Enrollment routes addressed by enrollment id
	students := protected.Group("/students", middleware.RequireTeacher())
	students.Put("/:id", enrollmentController.UpdateEnrollment)
	students.Delete("/:id", enrollmentController.DeleteEnrollment)

	// Attendance history across classes
	attendance := protected.Group("/attendance", middleware.RequireTeacher())
	attendance.Get("/", attendanceController.GetAttendanceRecords)

	// Fee statistics routes
	stats := protected.Group("/stats", middleware.RequireTeacher())
	stats.Get("/students", statsController.GetStudentStats)
	stats.Get("/classes", statsController.GetClassTotals)
	stats.Get("/summary", statsController.GetSummary)
	stats.Get("/monthly", statsController.GetMonthlySummary)

	// Payment status routes
	payments := protected.Group("/payments", middleware.RequireTeacher())
	payments.Get("/", paymentController.GetPaymentStatuses)
	payments.Post("/toggle", paymentController.TogglePaymentMonth)
	payments.Post("/toggle-window", paymentController.TogglePaymentWindow)

	// Fee report routes
	reports := protected.Group("/reports", middleware.RequireTeacher())
	reports.Get("/fees/export", reportController.ExportFeeReport)
	reports.Get("/archives", reportController.GetReportArchives)
	reports.Get("/archives/:id/download", reportController.DownloadReportArchive)

	// Notification management routes
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationController.GetNotifications)
	notifications.Get("/unread-count", notificationController.GetUnreadCount)
	notifications.Get("/:id", notificationController.GetNotification)
	notifications.Post("/", middleware.RequireAdmin(), notificationController.CreateNotification)
	notifications.Patch("/:id/read", notificationController.MarkAsRead)
	notifications.Patch("/mark-all-read", notificationController.MarkAllAsRead)
	notifications.Delete("/:id", notificationController.DeleteNotification)

	// Log management routes (admin only)
	logs := protected.Group("/logs", middleware.RequireAdmin())
	logs.Get("/", logController.GetLogs)
	logs.Get("/stats", logController.GetLogStats)
	logs.Get("/:id", logController.GetLog)
	logs.Post("/flush-cache", logController.FlushCachedLogs)
	logs.Post("/archive", logController.ArchiveOldLogs)

	// WebSocket routes
	ws := protected.Group("/ws")
	ws.Get("/stats", middleware.RequireAdmin(), wsController.GetWebSocketStats)

	// WebSocket connection endpoint - use websocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return wsController.HandleWebSocket(c)
	})
	app.Get("/ws", wsController.WebSocketHandler())
}
