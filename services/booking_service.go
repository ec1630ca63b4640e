package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brightpath/tutor_match/apperrors"
	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/scheduling"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier is the fire-and-forget dispatch collaborator. Implementations
// must swallow their own failures; a state change never depends on
// notification delivery.
type Notifier interface {
	Notify(userID uuid.UUID, kind, title, content string, metadata map[string]any)
}

var notifier Notifier

func SetNotifier(n Notifier) {
	notifier = n
}

// providerLocks serializes check-then-insert booking attempts per provider.
// Combined with the FOR UPDATE row lock on the provider row inside the
// transaction, two concurrent requests cannot both pass the conflict check.
var providerLocks sync.Map

func lockProvider(providerID uuid.UUID) func() {
	value, _ := providerLocks.LoadOrStore(providerID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// BookingRequest is a resolved-and-validated booking attempt from a
// student.
type BookingRequest struct {
	StudentID      uuid.UUID
	StudentName    string
	ProviderID     uuid.UUID
	StartTime      time.Time
	EndTime        time.Time
	AvailabilityID *uuid.UUID
	SessionType    scheduling.SessionType
	Notes          string
}

// matchSlot returns the first slot whose window contains
// [startMin, endMin]. Callers pass slots already filtered to the provider,
// day and active flag; ordering decides which slot wins.
func matchSlot(slots []models.AvailabilitySlot, startMin, endMin int) (*models.AvailabilitySlot, error) {
	for i := range slots {
		slot := &slots[i]
		slotStart, err := scheduling.ToMinutes(slot.StartTime)
		if err != nil {
			return nil, apperrors.Internal("stored slot has an invalid start time", err)
		}
		slotEnd, err := scheduling.ToMinutes(slot.EndTime)
		if err != nil {
			return nil, apperrors.Internal("stored slot has an invalid end time", err)
		}
		if scheduling.Contains(slotStart, slotEnd, startMin, endMin) {
			return slot, nil
		}
	}
	return nil, nil
}

// conflictsWith reports whether an existing booking blocks the
// [start, end) window: plain half-open overlap, or either interval fully
// containing the other. Adjacent bookings do not conflict.
func conflictsWith(existing *models.Booking, start, end time.Time) bool {
	if existing.StartTime.Before(end) && start.Before(existing.EndTime) {
		return true
	}
	// Containment either way; overlap already covers the strict cases, this
	// keeps the shared-endpoint duplicates out too.
	if !existing.StartTime.Before(start) && !existing.EndTime.After(end) {
		return true
	}
	if !start.Before(existing.StartTime) && !end.After(existing.EndTime) {
		return true
	}
	return false
}

// findConflict scans held bookings for one blocking the requested window.
func findConflict(held []models.Booking, start, end time.Time) *models.Booking {
	for i := range held {
		if conflictsWith(&held[i], start, end) {
			return &held[i]
		}
	}
	return nil
}

// CreateBooking resolves a requested window against the provider's
// availability and existing bookings, then inserts the booking in pending
// status. The match, conflict check and insert run under a per-provider
// mutex and a transaction holding a row lock on the provider.
func CreateBooking(req BookingRequest) (*models.Booking, error) {
	provider, err := FindProvider(req.ProviderID)
	if err != nil {
		return nil, err
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.Validation("end time must be after start time")
	}
	if req.SessionType == "" {
		req.SessionType = scheduling.SessionVirtual
	}
	if !req.SessionType.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid session type %q", req.SessionType))
	}

	dayOfWeek := scheduling.DayOfWeek(req.StartTime)
	startMin := scheduling.MinuteOfDay(req.StartTime)
	endMin := scheduling.MinuteOfDay(req.EndTime)

	unlock := lockProvider(req.ProviderID)
	defer unlock()

	var booking models.Booking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var lockedProvider models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&lockedProvider, "id = ?", req.ProviderID).Error; err != nil {
			return apperrors.Internal("failed to lock provider", err)
		}

		var matched *models.AvailabilitySlot
		if req.AvailabilityID != nil {
			var slot models.AvailabilitySlot
			err := tx.Where("id = ? AND provider_id = ? AND is_available = ?",
				*req.AvailabilityID, req.ProviderID, true).First(&slot).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("the selected availability slot does not exist or is not available")
				}
				return apperrors.Internal("failed to load availability slot", err)
			}
			matched = &slot
		} else {
			var slots []models.AvailabilitySlot
			err := tx.Where("provider_id = ? AND day_of_week = ? AND is_available = ?",
				req.ProviderID, dayOfWeek, true).
				Order("start_time asc").Find(&slots).Error
			if err != nil {
				return apperrors.Internal("failed to load availability", err)
			}
			matched, err = matchSlot(slots, startMin, endMin)
			if err != nil {
				return err
			}
			if matched == nil {
				return apperrors.Validation("provider is not available at the requested time")
			}
		}

		var held []models.Booking
		err := tx.Where("provider_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			req.ProviderID,
			[]scheduling.BookingStatus{scheduling.StatusPending, scheduling.StatusConfirmed},
			req.EndTime, req.StartTime).
			Find(&held).Error
		if err != nil {
			return apperrors.Internal("failed to check existing bookings", err)
		}
		if conflict := findConflict(held, req.StartTime, req.EndTime); conflict != nil {
			return apperrors.Conflict("the provider already has a booking during this time")
		}

		slotID := matched.ID
		booking = models.Booking{
			StudentID:      req.StudentID,
			StudentName:    req.StudentName,
			ProviderID:     provider.ID,
			ProviderName:   provider.FullName,
			ProviderRole:   provider.Role,
			AvailabilityID: &slotID,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			DayOfWeek:      dayOfWeek,
			Status:         scheduling.StatusPending,
			SessionType:    req.SessionType,
			Notes:          req.Notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return apperrors.Internal("failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func loadBooking(bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}
	return &booking, nil
}

// CancelBooking moves a booking to cancelled on behalf of the student,
// provider or an admin, enforcing the 24-hour student lead-time rule.
func CancelBooking(bookingID, actorID uuid.UUID, actorRole scheduling.Role, reason string) (*models.Booking, error) {
	booking, err := loadBooking(bookingID)
	if err != nil {
		return nil, err
	}

	isStudent := booking.StudentID == actorID
	isProvider := booking.ProviderID == actorID
	if !isStudent && !isProvider && !actorRole.IsAdmin() {
		return nil, apperrors.Forbidden("you are not authorized to cancel this booking")
	}

	transition := scheduling.Transition{
		From:       booking.Status,
		To:         scheduling.StatusCancelled,
		ActorID:    actorID,
		ActorRole:  actorRole,
		StudentID:  booking.StudentID,
		ProviderID: booking.ProviderID,
		StartTime:  booking.StartTime,
		Now:        time.Now(),
	}
	if err := transition.Authorize(); err != nil {
		return nil, err
	}

	if reason == "" {
		if isStudent {
			reason = "Cancelled by student"
		} else {
			reason = "Cancelled by provider"
		}
	}

	booking.Status = scheduling.StatusCancelled
	booking.CancellationReason = &reason
	if err := database.DB.Save(booking).Error; err != nil {
		return nil, apperrors.Internal("failed to cancel booking", err)
	}

	go notifyCounterParty(booking, actorID, "booking_cancelled", "Booking Cancelled",
		fmt.Sprintf("The booking on %s has been cancelled: %s",
			booking.StartTime.Format("Jan 2 at 15:04"), reason))

	return booking, nil
}

// UpdateBookingStatus moves a booking to confirmed or completed on behalf
// of the provider or an admin.
func UpdateBookingStatus(bookingID, actorID uuid.UUID, actorRole scheduling.Role, status scheduling.BookingStatus) (*models.Booking, error) {
	if status != scheduling.StatusConfirmed && status != scheduling.StatusCompleted {
		return nil, apperrors.Validation("invalid status: status must be 'confirmed' or 'completed'")
	}

	booking, err := loadBooking(bookingID)
	if err != nil {
		return nil, err
	}

	transition := scheduling.Transition{
		From:       booking.Status,
		To:         status,
		ActorID:    actorID,
		ActorRole:  actorRole,
		StudentID:  booking.StudentID,
		ProviderID: booking.ProviderID,
		StartTime:  booking.StartTime,
		Now:        time.Now(),
	}
	if err := transition.Authorize(); err != nil {
		return nil, err
	}

	booking.Status = status
	if err := database.DB.Save(booking).Error; err != nil {
		return nil, apperrors.Internal("failed to update booking status", err)
	}

	go notifyCounterParty(booking, actorID, "booking_"+string(status),
		fmt.Sprintf("Booking %s", status),
		fmt.Sprintf("Your booking with %s has been %s", booking.ProviderName, status))

	return booking, nil
}

// notifyCounterParty pushes a lifecycle notification to whichever side of
// the booking did not trigger the change. Dispatch is best-effort.
func notifyCounterParty(booking *models.Booking, actorID uuid.UUID, kind, title, content string) {
	if notifier == nil {
		return
	}
	recipient := booking.StudentID
	if actorID == booking.StudentID {
		recipient = booking.ProviderID
	}
	notifier.Notify(recipient, kind, title, content, map[string]any{
		"booking_id": booking.ID,
		"start_time": booking.StartTime,
		"end_time":   booking.EndTime,
		"status":     booking.Status,
	})
}
