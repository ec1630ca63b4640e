package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one in-app message for a user. Metadata holds a JSON
// document describing the triggering event.
type Notification struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind     string    `gorm:"size:50;not null" json:"kind"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Content  string    `gorm:"type:text" json:"content"`
	IsRead   bool      `gorm:"not null;default:false" json:"is_read"`
	Metadata string    `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
