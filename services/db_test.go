package services

import (
	"testing"

	"classtrack_go/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the tables the services touch
// and swaps it in for database.DB until the test finishes. Column types are
// spelled out by hand because the enum tags on the models are MySQL-only.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	// A pooled :memory: connection would get a fresh empty database.
	sqlDB.SetMaxOpenConns(1)

	ddl := []string{
		`CREATE TABLE classes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			class_name TEXT NOT NULL, teacher_id TEXT NOT NULL, teacher_name TEXT,
			subject TEXT NOT NULL, fee_per_session INTEGER NOT NULL,
			description TEXT, is_active BOOLEAN DEFAULT true, total_students INTEGER DEFAULT 0
		)`,
		`CREATE TABLE attendance_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			student_id TEXT NOT NULL, class_id INTEGER NOT NULL, date TEXT NOT NULL,
			status TEXT NOT NULL, fee INTEGER, note TEXT
		)`,
		`CREATE TABLE payment_statuses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			student_id TEXT NOT NULL, class_id INTEGER NOT NULL, month TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'unpaid', teacher_id TEXT NOT NULL,
			UNIQUE (student_id, class_id, month)
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}
