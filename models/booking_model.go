package models

import (
	"time"

	"github.com/brightpath/tutor_match/scheduling"
	"github.com/google/uuid"
)

// Booking is one requested or held session between a student and a
// provider. StudentName/ProviderName/ProviderRole are point-in-time
// snapshots. AvailabilityID is nullable: deleting a slot nullifies the
// back-reference on historical bookings.
type Booking struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	StudentName    string     `gorm:"size:255;not null" json:"student_name"`
	ProviderID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"provider_id"`
	ProviderName   string     `gorm:"size:255;not null" json:"provider_name"`
	ProviderRole   scheduling.Role `gorm:"size:20;not null" json:"provider_role"`
	AvailabilityID *uuid.UUID `gorm:"type:uuid" json:"availability_id"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	DayOfWeek int       `gorm:"not null" json:"day_of_week"`

	Status             scheduling.BookingStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	SessionType        scheduling.SessionType   `gorm:"size:20;not null;default:'virtual'" json:"session_type"`
	Notes              string                   `gorm:"type:text" json:"notes"`
	CancellationReason *string                  `gorm:"size:255" json:"cancellation_reason,omitempty"`

	Student  User `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Provider User `gorm:"foreignkey:ProviderID" json:"provider,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
