package handlers

import (
	"time"

	"github.com/brightpath/tutor_match/apperrors"
	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/scheduling"
	"github.com/brightpath/tutor_match/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	ProviderID     string  `json:"provider_id" validate:"required,uuid"`
	StartTime      string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime        string  `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	AvailabilityID *string `json:"availability_id,omitempty" validate:"omitempty,uuid"`
	SessionType    string  `json:"session_type,omitempty" validate:"omitempty,oneof=virtual in-person"`
	Notes          string  `json:"notes,omitempty"`
}

func CreateBooking(c *fiber.Ctx) error {
	studentID, _ := actor(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	providerID, _ := uuid.Parse(req.ProviderID)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	var availabilityID *uuid.UUID
	if req.AvailabilityID != nil {
		id, _ := uuid.Parse(*req.AvailabilityID)
		availabilityID = &id
	}

	booking, err := services.CreateBooking(services.BookingRequest{
		StudentID:      studentID,
		StudentName:    actorName(c),
		ProviderID:     providerID,
		StartTime:      startTime,
		EndTime:        endTime,
		AvailabilityID: availabilityID,
		SessionType:    scheduling.SessionType(req.SessionType),
		Notes:          req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "booking created successfully",
		"booking": booking,
	})
}

// bookingFilters applies the shared status and date-range query filters.
func bookingFilters(c *fiber.Ctx, query *gorm.DB) (*gorm.DB, error) {
	if status := c.Query("status"); status != "" {
		if !scheduling.BookingStatus(status).Valid() {
			return nil, apperrors.Validation("invalid status filter")
		}
		query = query.Where("status = ?", status)
	}
	if startDate := c.Query("startDate"); startDate != "" {
		t, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return nil, apperrors.Validation("invalid startDate: use RFC3339")
		}
		query = query.Where("start_time >= ?", t)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		t, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			return nil, apperrors.Validation("invalid endDate: use RFC3339")
		}
		query = query.Where("end_time <= ?", t)
	}
	return query, nil
}

// GetMyBookings lists the authenticated student's bookings.
func GetMyBookings(c *fiber.Ctx) error {
	studentID, _ := actor(c)

	query, err := bookingFilters(c, database.DB.Where("student_id = ?", studentID))
	if err != nil {
		return err
	}

	var bookings []models.Booking
	if err := query.Preload("Provider").Order("start_time asc").Find(&bookings).Error; err != nil {
		return apperrors.Internal("failed to list bookings", err)
	}
	return c.JSON(bookings)
}

// GetProviderBookings lists the authenticated provider's bookings.
func GetProviderBookings(c *fiber.Ctx) error {
	providerID, role := actor(c)
	if !role.IsProvider() {
		return apperrors.Forbidden("only tutors and counselors can view their bookings")
	}

	query, err := bookingFilters(c, database.DB.Where("provider_id = ?", providerID))
	if err != nil {
		return err
	}

	var bookings []models.Booking
	if err := query.Preload("Student").Order("start_time asc").Find(&bookings).Error; err != nil {
		return apperrors.Internal("failed to list bookings", err)
	}
	return c.JSON(bookings)
}

func GetBookingByID(c *fiber.Ctx) error {
	userID, role := actor(c)
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Validation("invalid booking id")
	}

	var booking models.Booking
	if err := database.DB.Preload("Student").Preload("Provider").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		return apperrors.NotFound("booking not found")
	}

	if booking.StudentID != userID && booking.ProviderID != userID && !role.IsAdmin() {
		return apperrors.Forbidden("you are not authorized to view this booking")
	}
	return c.JSON(booking)
}

type CancelBookingRequest struct {
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

func CancelBooking(c *fiber.Ctx) error {
	userID, role := actor(c)
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Validation("invalid booking id")
	}

	var req CancelBookingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.Validation("cannot parse JSON")
		}
	}

	booking, err := services.CancelBooking(bookingID, userID, role, req.CancellationReason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "booking cancelled successfully",
		"booking": booking,
	})
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed"`
}

func UpdateBookingStatus(c *fiber.Ctx) error {
	userID, role := actor(c)
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Validation("invalid booking id")
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation("invalid status: status must be 'confirmed' or 'completed'")
	}

	booking, err := services.UpdateBookingStatus(bookingID, userID, role, scheduling.BookingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "booking marked as " + req.Status,
		"booking": booking,
	})
}
