package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// Attendance statuses. Excused is the only status that never charges a fee.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
	StatusMakeup  = "makeup"
)

// Payment statuses for a (student, class, month) cell.
const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

// PendingStudentID marks an enrollment whose invited student has not yet
// linked their own identity. Reconciliation happens outside this service.
const PendingStudentID = "pending"

// User mirrors an account at the external identity provider. The UID is the
// provider's subject and is the value used as teacher_id/student_id foreign
// keys throughout.
type User struct {
	BaseModel
	UID         string `json:"uid" gorm:"size:128;not null;uniqueIndex"`
	Email       string `json:"email" gorm:"size:255;uniqueIndex"`
	DisplayName string `json:"display_name" gorm:"size:255"`
	Password    string `json:"-" gorm:"size:255"` // used by seeders and CLI tooling only
	Role        string `json:"role" gorm:"size:50;not null;default:'teacher';type:enum('admin','teacher','student')"`
	Status      string `json:"status" gorm:"size:50;not null;default:'active';type:enum('active','inactive','suspended')"`
}

// Class is a recurring teaching engagement owned by one teacher.
type Class struct {
	BaseModel
	ClassName     string `json:"class_name" gorm:"size:255;not null"`
	TeacherID     string `json:"teacher_id" gorm:"size:128;not null;index"`
	TeacherName   string `json:"teacher_name" gorm:"size:255"`
	Subject       string `json:"subject" gorm:"size:255;not null"`
	FeePerSession int64  `json:"fee_per_session" gorm:"not null"` // default charge for every session; must be > 0 at creation
	Description   string `json:"description" gorm:"type:text"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
	TotalStudents int    `json:"total_students" gorm:"default:0"`

	// Relationships
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:ClassID"`
}

// Enrollment is a student's membership in a class. StudentID stays "pending"
// until the invited student's identity is linked.
type Enrollment struct {
	BaseModel
	StudentID    string    `json:"student_id" gorm:"size:128;not null;index;default:'pending'"`
	StudentName  string    `json:"student_name" gorm:"size:255;not null"`
	StudentEmail string    `json:"student_email" gorm:"size:255;not null"`
	ClassID      uint      `json:"class_id" gorm:"not null;index"`
	PhoneNumber  string    `json:"phone_number" gorm:"size:20"`
	EnrolledAt   time.Time `json:"enrolled_at"`
	Status       string    `json:"status" gorm:"size:50;not null;default:'active';type:enum('active','inactive')"`

	// Relationships
	Class Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`
}

// AttendanceRecord is one (student, class, date) observation. The store does
// not enforce uniqueness per key; aggregation sums duplicates as-is. Fee is
// only meaningful for makeup sessions, where it overrides the class default.
type AttendanceRecord struct {
	BaseModel
	StudentID string `json:"student_id" gorm:"size:128;not null;index"`
	ClassID   uint   `json:"class_id" gorm:"not null;index:idx_attendance_class_date"`
	Date      string `json:"date" gorm:"size:10;not null;index:idx_attendance_class_date"` // YYYY-MM-DD
	Status    string `json:"status" gorm:"size:20;not null;type:enum('present','absent','late','excused','makeup')"`
	Fee       int64  `json:"fee,omitempty"`
	Note      string `json:"note" gorm:"type:text"`
}

// PaymentStatus is a (student, class, month) paid/unpaid flag, independent of
// attendance. Absence of a row means unpaid; rows are never deleted. The
// composite unique index keeps exactly one row per key.
type PaymentStatus struct {
	BaseModel
	StudentID string `json:"student_id" gorm:"size:128;not null;uniqueIndex:idx_payment_key"`
	ClassID   uint   `json:"class_id" gorm:"not null;uniqueIndex:idx_payment_key"`
	Month     string `json:"month" gorm:"size:7;not null;uniqueIndex:idx_payment_key;index"` // YYYY-MM
	Status    string `json:"status" gorm:"size:20;not null;default:'unpaid';type:enum('paid','unpaid')"`
	TeacherID string `json:"teacher_id" gorm:"size:128;not null;index"`
}

// Key returns the composite document key studentId_classId_month.
func (p PaymentStatus) Key() string {
	return PaymentKey(p.StudentID, p.ClassID, p.Month)
}

// PaymentKey builds the composite key studentId_classId_month.
func PaymentKey(studentID string, classID uint, month string) string {
	return fmt.Sprintf("%s_%d_%s", studentID, classID, month)
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Notification model
type Notification struct {
	BaseModel
	UserID  uint       `json:"user_id" gorm:"not null"`
	Title   string     `json:"title" gorm:"size:255;not null"`
	Message string     `json:"message" gorm:"type:text;not null"`
	Type    string     `json:"type" gorm:"size:50;not null;type:enum('info','warning','error','success')"`
	Read    bool       `json:"read" gorm:"default:false"`
	ReadAt  *time.Time `json:"read_at"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ReportArchive tracks generated fee reports uploaded to S3.
type ReportArchive struct {
	BaseModel
	TeacherID string `json:"teacher_id" gorm:"size:128;not null;index"`
	FileName  string `json:"file_name" gorm:"size:255;not null"`
	S3Key     string `json:"s3_key" gorm:"size:500;not null"`
	DateFrom  string `json:"date_from" gorm:"size:10"`
	DateTo    string `json:"date_to" gorm:"size:10"`
	RowCount  int    `json:"row_count"`
	FileSize  int64  `json:"file_size"`
	Status    string `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','completed','failed')"`
	Error     string `json:"error" gorm:"type:text"`
}
