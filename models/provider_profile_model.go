package models

import (
	"time"

	"github.com/google/uuid"
)

// ProviderProfile carries the public-facing details of a tutor or
// counselor, keyed by the owning user's id.
type ProviderProfile struct {
	UserID     uuid.UUID `gorm:"primary_key" json:"user_id"`
	Headline   *string   `gorm:"size:255" json:"headline"`
	Bio        *string   `gorm:"type:text" json:"bio"`
	Subjects   *string   `gorm:"size:500" json:"subjects"`
	HourlyRate float64   `gorm:"type:numeric(10,2);default:0.00" json:"hourly_rate"`
	AvatarURL  *string   `gorm:"size:255" json:"avatar_url"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
