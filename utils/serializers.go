package utils

import (
	"time"

	"classtrack_go/models"
)

// Compact representations used across APIs
type UserShort struct {
	ID          uint   `json:"id"`
	UID         string `json:"uid,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

type ClassShort struct {
	ID            uint   `json:"id"`
	ClassName     string `json:"class_name,omitempty"`
	Subject       string `json:"subject,omitempty"`
	FeePerSession int64  `json:"fee_per_session,omitempty"`
}

type NotificationDTO struct {
	ID        uint       `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UserID    uint       `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	User      UserShort  `json:"user"`
}

// ToNotificationDTO maps a models.Notification to the compact DTO.
// Caller should have preloaded User when possible.
func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		CreatedAt: n.CreatedAt,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		User: UserShort{
			ID:          n.User.ID,
			UID:         n.User.UID,
			DisplayName: n.User.DisplayName,
			Email:       n.User.Email,
		},
	}
}

// ToNotificationDTOs maps a slice of notifications.
func ToNotificationDTOs(list []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, ToNotificationDTO(n))
	}
	return out
}

// ToClassShort maps a class to its compact form.
func ToClassShort(c models.Class) ClassShort {
	return ClassShort{
		ID:            c.ID,
		ClassName:     c.ClassName,
		Subject:       c.Subject,
		FeePerSession: c.FeePerSession,
	}
}
