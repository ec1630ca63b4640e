// Package services holds the booking and availability rules that run
// between the HTTP handlers and the database: batch slot validation,
// availability resolution, the booking conflict check and lifecycle
// transitions.
package services

import (
	"errors"
	"fmt"

	"github.com/brightpath/tutor_match/apperrors"
	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/scheduling"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotInput is one item of an availability batch. IsAvailable and
// Recurrence fall back to true / weekly when omitted.
type SlotInput struct {
	DayOfWeek   int
	StartTime   string
	EndTime     string
	IsAvailable *bool
	Recurrence  string
}

// validateSlotInput checks one batch item in isolation and returns its
// start/end as minutes since midnight.
func validateSlotInput(in SlotInput) (startMin, endMin int, err error) {
	if !scheduling.ValidDayOfWeek(in.DayOfWeek) {
		return 0, 0, apperrors.Validation(
			fmt.Sprintf("valid day of week (0-6) is required for slot %s-%s", in.StartTime, in.EndTime))
	}
	if in.StartTime == "" || in.EndTime == "" {
		return 0, 0, apperrors.Validation("start time and end time are required for all slots")
	}
	startMin, err = scheduling.ToMinutes(in.StartTime)
	if err != nil {
		return 0, 0, err
	}
	endMin, err = scheduling.ToMinutes(in.EndTime)
	if err != nil {
		return 0, 0, err
	}
	if endMin <= startMin {
		return 0, 0, apperrors.Validation(
			fmt.Sprintf("end time must be after start time for slot %s-%s", in.StartTime, in.EndTime))
	}
	if in.Recurrence != "" && !scheduling.Recurrence(in.Recurrence).Valid() {
		return 0, 0, apperrors.Validation(fmt.Sprintf("invalid recurrence %q", in.Recurrence))
	}
	return startMin, endMin, nil
}

// checkSlotOverlap compares a candidate window against every active slot of
// the same provider+day and fails with a Conflict naming the offender.
// Adjacent slots (shared endpoint) are allowed; exact duplicates are not.
func checkSlotOverlap(dayOfWeek, startMin, endMin int, startTime, endTime string, existing []models.AvailabilitySlot) error {
	for i := range existing {
		slot := &existing[i]
		if slot.DayOfWeek != dayOfWeek || !slot.IsAvailable {
			continue
		}
		existingStart, err := scheduling.ToMinutes(slot.StartTime)
		if err != nil {
			return apperrors.Internal("stored slot has an invalid start time", err)
		}
		existingEnd, err := scheduling.ToMinutes(slot.EndTime)
		if err != nil {
			return apperrors.Internal("stored slot has an invalid end time", err)
		}
		if scheduling.Overlaps(startMin, endMin, existingStart, existingEnd) {
			return apperrors.Conflict(fmt.Sprintf(
				"cannot create overlapping availability slot on %s at %s-%s: you already have a slot from %s to %s",
				scheduling.DayName(dayOfWeek), startTime, endTime, slot.StartTime, slot.EndTime))
		}
	}
	return nil
}

// CreateAvailability persists a batch of slots for a provider. The batch is
// all-or-nothing: the first invalid or overlapping item rejects the whole
// request. Each item is checked against the provider's stored active slots
// and against the earlier items of the same batch.
func CreateAvailability(providerID uuid.UUID, providerName string, role scheduling.Role, items []SlotInput) ([]models.AvailabilitySlot, error) {
	if !role.IsProvider() {
		return nil, apperrors.Forbidden("only tutors and counselors can set availability")
	}
	if len(items) == 0 {
		return nil, apperrors.Validation("no availability slots provided")
	}

	var created []models.AvailabilitySlot
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.AvailabilitySlot
		if err := tx.Where("provider_id = ? AND is_available = ?", providerID, true).
			Find(&existing).Error; err != nil {
			return apperrors.Internal("failed to load existing availability", err)
		}

		accepted := existing
		for _, item := range items {
			startMin, endMin, err := validateSlotInput(item)
			if err != nil {
				return err
			}
			if err := checkSlotOverlap(item.DayOfWeek, startMin, endMin, item.StartTime, item.EndTime, accepted); err != nil {
				return err
			}

			isAvailable := true
			if item.IsAvailable != nil {
				isAvailable = *item.IsAvailable
			}
			recurrence := scheduling.RecurrenceWeekly
			if item.Recurrence != "" {
				recurrence = scheduling.Recurrence(item.Recurrence)
			}

			slot := models.AvailabilitySlot{
				ProviderID:   providerID,
				ProviderName: providerName,
				ProviderRole: role,
				DayOfWeek:    item.DayOfWeek,
				StartTime:    item.StartTime,
				EndTime:      item.EndTime,
				IsAvailable:  isAvailable,
				Recurrence:   recurrence,
			}
			created = append(created, slot)
			accepted = append(accepted, slot)
		}

		if err := tx.Create(&created).Error; err != nil {
			return apperrors.Internal("failed to create availability slots", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SlotPatch is a partial availability update; nil fields keep their stored
// value.
type SlotPatch struct {
	DayOfWeek   *int
	StartTime   *string
	EndTime     *string
	IsAvailable *bool
	Recurrence  *string
}

// UpdateAvailability applies a partial update to an owned slot. Unlike the
// create path's historical counterpart, the update re-runs the cross-slot
// overlap check so a patch cannot produce an overlapping active pair.
func UpdateAvailability(slotID, requesterID uuid.UUID, requesterRole scheduling.Role, patch SlotPatch) (*models.AvailabilitySlot, error) {
	if !requesterRole.IsProvider() {
		return nil, apperrors.Forbidden("only tutors and counselors can update availability")
	}

	var slot models.AvailabilitySlot
	if err := database.DB.First(&slot, "id = ?", slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("availability slot not found")
		}
		return nil, apperrors.Internal("failed to load availability slot", err)
	}
	if slot.ProviderID != requesterID {
		return nil, apperrors.Forbidden("you can only update your own availability slots")
	}

	if patch.DayOfWeek != nil {
		if !scheduling.ValidDayOfWeek(*patch.DayOfWeek) {
			return nil, apperrors.Validation("valid day of week (0-6) is required")
		}
		slot.DayOfWeek = *patch.DayOfWeek
	}
	if patch.StartTime != nil {
		if _, err := scheduling.ToMinutes(*patch.StartTime); err != nil {
			return nil, err
		}
		slot.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		if _, err := scheduling.ToMinutes(*patch.EndTime); err != nil {
			return nil, err
		}
		slot.EndTime = *patch.EndTime
	}
	if patch.IsAvailable != nil {
		slot.IsAvailable = *patch.IsAvailable
	}
	if patch.Recurrence != nil {
		if !scheduling.Recurrence(*patch.Recurrence).Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid recurrence %q", *patch.Recurrence))
		}
		slot.Recurrence = scheduling.Recurrence(*patch.Recurrence)
	}

	// The unchanged side of start/end comes from the stored value, so the
	// window is always re-validated as a whole.
	startMin, err := scheduling.ToMinutes(slot.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := scheduling.ToMinutes(slot.EndTime)
	if err != nil {
		return nil, err
	}
	if endMin <= startMin {
		return nil, apperrors.Validation("end time must be after start time")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if slot.IsAvailable {
			var siblings []models.AvailabilitySlot
			if err := tx.Where("provider_id = ? AND day_of_week = ? AND is_available = ? AND id <> ?",
				slot.ProviderID, slot.DayOfWeek, true, slot.ID).
				Find(&siblings).Error; err != nil {
				return apperrors.Internal("failed to load sibling slots", err)
			}
			if err := checkSlotOverlap(slot.DayOfWeek, startMin, endMin, slot.StartTime, slot.EndTime, siblings); err != nil {
				return err
			}
		}
		if err := tx.Save(&slot).Error; err != nil {
			return apperrors.Internal("failed to update availability slot", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// DeleteAvailability hard-deletes an owned slot. Slots with dependent
// upcoming pending/confirmed bookings cannot be deleted; historical
// bookings get their back-reference nullified in the same transaction.
func DeleteAvailability(slotID, requesterID uuid.UUID, requesterRole scheduling.Role) error {
	if !requesterRole.IsProvider() {
		return apperrors.Forbidden("only tutors and counselors can delete availability")
	}

	var slot models.AvailabilitySlot
	if err := database.DB.First(&slot, "id = ?", slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("availability slot not found")
		}
		return apperrors.Internal("failed to load availability slot", err)
	}
	if slot.ProviderID != requesterID {
		return apperrors.Forbidden("you can only delete your own availability slots")
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		var dependent int64
		if err := tx.Model(&models.Booking{}).
			Where("availability_id = ? AND status IN ? AND start_time > NOW()",
				slot.ID, []scheduling.BookingStatus{scheduling.StatusPending, scheduling.StatusConfirmed}).
			Count(&dependent).Error; err != nil {
			return apperrors.Internal("failed to check dependent bookings", err)
		}
		if dependent > 0 {
			return apperrors.Conflict("cannot delete an availability slot with upcoming bookings")
		}

		if err := tx.Model(&models.Booking{}).
			Where("availability_id = ?", slot.ID).
			Update("availability_id", nil).Error; err != nil {
			return apperrors.Internal("failed to detach historical bookings", err)
		}
		if err := tx.Delete(&slot).Error; err != nil {
			return apperrors.Internal("failed to delete availability slot", err)
		}
		return nil
	})
}

// ListProviderAvailability returns a provider's slots ordered by day then
// start time.
func ListProviderAvailability(providerID uuid.UUID, activeOnly bool) ([]models.AvailabilitySlot, error) {
	query := database.DB.Where("provider_id = ?", providerID)
	if activeOnly {
		query = query.Where("is_available = ?", true)
	}

	var slots []models.AvailabilitySlot
	if err := query.Order("day_of_week asc, start_time asc").Find(&slots).Error; err != nil {
		return nil, apperrors.Internal("failed to list availability", err)
	}
	return slots, nil
}

// FindProvider loads a user and verifies they hold a provider role.
func FindProvider(providerID uuid.UUID) (*models.User, error) {
	var provider models.User
	err := database.DB.
		Where("id = ? AND role IN ?", providerID,
			[]scheduling.Role{scheduling.RoleTutor, scheduling.RoleCounselor}).
		First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("provider not found or is not a tutor/counselor")
		}
		return nil, apperrors.Internal("failed to load provider", err)
	}
	return &provider, nil
}
