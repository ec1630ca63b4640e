package handlers

import (
	"github.com/brightpath/tutor_match/apperrors"
	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/scheduling"
	"github.com/brightpath/tutor_match/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// inboxProvider resolves whose inbox is being read: the caller's own, or —
// for admins — any provider named by the tutorId query parameter, after
// verifying that id really is a provider.
func inboxProvider(c *fiber.Ctx) (uuid.UUID, error) {
	userID, role := actor(c)

	tutorID := c.Query("tutorId")
	if !role.IsAdmin() || tutorID == "" {
		return userID, nil
	}

	providerID, err := uuid.Parse(tutorID)
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid tutorId")
	}
	if _, err := services.FindProvider(providerID); err != nil {
		return uuid.Nil, err
	}
	return providerID, nil
}

// GetPendingRequests is the provider inbox: pending bookings, newest
// request first.
func GetPendingRequests(c *fiber.Ctx) error {
	providerID, err := inboxProvider(c)
	if err != nil {
		return err
	}

	var requests []models.Booking
	err = database.DB.Preload("Student").
		Where("provider_id = ? AND status = ?", providerID, scheduling.StatusPending).
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		return apperrors.Internal("failed to list pending requests", err)
	}
	return c.JSON(requests)
}

// GetAllRequests lists a provider's requests across statuses, most recent
// session first, optionally filtered by ?status=.
func GetAllRequests(c *fiber.Ctx) error {
	providerID, err := inboxProvider(c)
	if err != nil {
		return err
	}

	query := database.DB.Where("provider_id = ?", providerID)
	if status := c.Query("status"); status != "" {
		if !scheduling.BookingStatus(status).Valid() {
			return apperrors.Validation("invalid status filter")
		}
		query = query.Where("status = ?", status)
	}

	var requests []models.Booking
	if err := query.Preload("Student").Order("start_time desc").Find(&requests).Error; err != nil {
		return apperrors.Internal("failed to list requests", err)
	}
	return c.JSON(requests)
}

type ProcessRequestBody struct {
	Status             string `json:"status" validate:"required,oneof=confirmed cancelled"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

// ProcessRequest lets the provider confirm or decline one pending request
// from their inbox.
func ProcessRequest(c *fiber.Ctx) error {
	userID, role := actor(c)
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Validation("invalid booking id")
	}

	var req ProcessRequestBody
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation("status must be either 'confirmed' or 'cancelled'")
	}

	var booking *models.Booking
	if req.Status == "confirmed" {
		booking, err = services.UpdateBookingStatus(bookingID, userID, role, scheduling.StatusConfirmed)
	} else {
		booking, err = services.CancelBooking(bookingID, userID, role, req.CancellationReason)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "session request " + req.Status + " successfully",
		"booking": booking,
	})
}

// GetTutorRequestsAdmin is the admin view of any provider's request queue.
func GetTutorRequestsAdmin(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return apperrors.Validation("invalid tutor id")
	}

	provider, err := services.FindProvider(providerID)
	if err != nil {
		return err
	}

	query := database.DB.Where("provider_id = ?", providerID)
	if status := c.Query("status"); status != "" {
		if !scheduling.BookingStatus(status).Valid() {
			return apperrors.Validation("invalid status filter")
		}
		query = query.Where("status = ?", status)
	}

	var requests []models.Booking
	if err := query.Preload("Student").Order("start_time desc").Find(&requests).Error; err != nil {
		return apperrors.Internal("failed to list requests", err)
	}
	return c.JSON(fiber.Map{
		"provider": provider.FullName,
		"requests": requests,
	})
}
