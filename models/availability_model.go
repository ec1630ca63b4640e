package models

import (
	"time"

	"github.com/brightpath/tutor_match/scheduling"
	"github.com/google/uuid"
)

// AvailabilitySlot is one recurring weekly window a provider is open for
// bookings. StartTime/EndTime are wall-clock "HH:MM" strings; the minute
// math lives in the scheduling package. ProviderName and ProviderRole are a
// snapshot taken at write time and are not kept in sync with later profile
// edits.
type AvailabilitySlot struct {
	ID           uuid.UUID             `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProviderID   uuid.UUID             `gorm:"type:uuid;not null;index:idx_availability_provider_day" json:"provider_id"`
	ProviderName string                `gorm:"size:255;not null" json:"provider_name"`
	ProviderRole scheduling.Role       `gorm:"size:20;not null" json:"provider_role"`
	DayOfWeek    int                   `gorm:"not null;index:idx_availability_provider_day" json:"day_of_week"`
	StartTime    string                `gorm:"size:8;not null" json:"start_time"`
	EndTime      string                `gorm:"size:8;not null" json:"end_time"`
	IsAvailable  bool                  `gorm:"not null;default:true" json:"is_available"`
	Recurrence   scheduling.Recurrence `gorm:"size:20;not null;default:'weekly'" json:"recurrence"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
