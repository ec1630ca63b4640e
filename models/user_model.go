package models

import (
	"time"

	"github.com/brightpath/tutor_match/scheduling"
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string          `gorm:"size:255;not null" json:"full_name"`
	Email    string          `gorm:"size:255;not null;unique" json:"email"`
	Password string          `gorm:"not null" json:"-"`
	Role     scheduling.Role `gorm:"size:20;not null;default:'student'" json:"role"`
	IsActive bool            `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
