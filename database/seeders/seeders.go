package seeders

import (
	"log"
	"time"

	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/utils"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedUsers()
	SeedClasses()
	SeedEnrollments()

	log.Println("Database seeding completed successfully!")
}

// SeedUsers seeds a demo admin and a demo teacher
func SeedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return
	}

	adminPassword, err := utils.HashPassword("admin123")
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}
	teacherPassword, err := utils.HashPassword("teacher123")
	if err != nil {
		log.Printf("Failed to hash teacher password: %v", err)
		return
	}

	users := []models.User{
		{
			UID:         "admin-demo",
			Email:       "admin@classtrack.local",
			DisplayName: "Demo Admin",
			Password:    adminPassword,
			Role:        "admin",
			Status:      "active",
		},
		{
			UID:         "teacher-demo",
			Email:       "teacher@classtrack.local",
			DisplayName: "Demo Teacher",
			Password:    teacherPassword,
			Role:        "teacher",
			Status:      "active",
		},
	}

	if err := database.DB.Create(&users).Error; err != nil {
		log.Printf("Failed to seed users: %v", err)
		return
	}
	log.Printf("Seeded %d users", len(users))
}

// SeedClasses seeds demo classes owned by the demo teacher
func SeedClasses() {
	var count int64
	database.DB.Model(&models.Class{}).Count(&count)
	if count > 0 {
		log.Println("Classes already seeded, skipping...")
		return
	}

	classes := []models.Class{
		{
			ClassName:     "English Conversation A1",
			TeacherID:     "teacher-demo",
			TeacherName:   "Demo Teacher",
			Subject:       "English",
			FeePerSession: 50000,
			Description:   "Beginner conversation class, twice a week",
			IsActive:      true,
		},
		{
			ClassName:     "Math Tutoring M3",
			TeacherID:     "teacher-demo",
			TeacherName:   "Demo Teacher",
			Subject:       "Mathematics",
			FeePerSession: 40000,
			Description:   "Exam preparation for grade 9",
			IsActive:      true,
		},
	}

	if err := database.DB.Create(&classes).Error; err != nil {
		log.Printf("Failed to seed classes: %v", err)
		return
	}
	log.Printf("Seeded %d classes", len(classes))
}

// SeedEnrollments seeds demo students into the demo classes
func SeedEnrollments() {
	var count int64
	database.DB.Model(&models.Enrollment{}).Count(&count)
	if count > 0 {
		log.Println("Enrollments already seeded, skipping...")
		return
	}

	var classes []models.Class
	if err := database.DB.Where("teacher_id = ?", "teacher-demo").
		Order("id ASC").Find(&classes).Error; err != nil || len(classes) == 0 {
		log.Println("No demo classes found, skipping enrollment seeding")
		return
	}

	now := time.Now()
	enrollments := []models.Enrollment{
		{
			StudentID:    models.PendingStudentID,
			StudentName:  "Nanthakarn S.",
			StudentEmail: "nanthakarn@example.com",
			ClassID:      classes[0].ID,
			PhoneNumber:  "081-000-0001",
			EnrolledAt:   now,
			Status:       "active",
		},
		{
			StudentID:    models.PendingStudentID,
			StudentName:  "Pimchanok W.",
			StudentEmail: "pimchanok@example.com",
			ClassID:      classes[0].ID,
			PhoneNumber:  "081-000-0002",
			EnrolledAt:   now,
			Status:       "active",
		},
	}
	if len(classes) > 1 {
		enrollments = append(enrollments, models.Enrollment{
			StudentID:    models.PendingStudentID,
			StudentName:  "Thanawat K.",
			StudentEmail: "thanawat@example.com",
			ClassID:      classes[1].ID,
			PhoneNumber:  "081-000-0003",
			EnrolledAt:   now,
			Status:       "active",
		})
	}

	if err := database.DB.Create(&enrollments).Error; err != nil {
		log.Printf("Failed to seed enrollments: %v", err)
		return
	}

	for _, class := range classes {
		var enrolled int64
		database.DB.Model(&models.Enrollment{}).Where("class_id = ?", class.ID).Count(&enrolled)
		database.DB.Model(&models.Class{}).Where("id = ?", class.ID).
			Update("total_students", enrolled)
	}

	log.Printf("Seeded %d enrollments", len(enrollments))
}
