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

type AvailabilityItem struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	IsAvailable *bool  `json:"is_available,omitempty"`
	Recurrence  string `json:"recurrence,omitempty" validate:"omitempty,oneof=one-time weekly biweekly monthly"`
}

// CreateAvailability accepts a single slot object or an array of them and
// persists the whole batch atomically.
func CreateAvailability(c *fiber.Ctx) error {
	providerID, role := actor(c)

	var items []AvailabilityItem
	if err := c.BodyParser(&items); err != nil {
		var single AvailabilityItem
		if err := c.BodyParser(&single); err != nil {
			return apperrors.Validation("cannot parse JSON")
		}
		items = []AvailabilityItem{single}
	}

	inputs := make([]services.SlotInput, 0, len(items))
	for _, item := range items {
		if err := validate.Struct(item); err != nil {
			return apperrors.Validation(err.Error())
		}
		inputs = append(inputs, services.SlotInput{
			DayOfWeek:   *item.DayOfWeek,
			StartTime:   item.StartTime,
			EndTime:     item.EndTime,
			IsAvailable: item.IsAvailable,
			Recurrence:  item.Recurrence,
		})
	}

	created, err := services.CreateAvailability(providerID, actorName(c), role, inputs)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "availability slots created successfully",
		"availabilities": created,
	})
}

// GetMyAvailability lists every slot the authenticated provider owns,
// active or not.
func GetMyAvailability(c *fiber.Ctx) error {
	providerID, role := actor(c)
	if !role.IsProvider() {
		return apperrors.Forbidden("only tutors and counselors can view their availability")
	}

	slots, err := services.ListProviderAvailability(providerID, false)
	if err != nil {
		return err
	}
	return c.JSON(slots)
}

// GetProviderAvailability is the public view of one provider's active
// slots.
func GetProviderAvailability(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("providerId"))
	if err != nil {
		return apperrors.Validation("invalid provider id")
	}

	provider, err := services.FindProvider(providerID)
	if err != nil {
		return err
	}

	slots, err := services.ListProviderAvailability(providerID, true)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"provider": fiber.Map{
			"id":   provider.ID,
			"name": provider.FullName,
			"role": provider.Role,
		},
		"availabilities": slots,
	})
}

// GetAllProvidersAvailability lists every provider together with their
// active slots.
func GetAllProvidersAvailability(c *fiber.Ctx) error {
	var providers []models.User
	err := database.DB.
		Where("role IN ?", []scheduling.Role{scheduling.RoleTutor, scheduling.RoleCounselor}).
		Find(&providers).Error
	if err != nil {
		return apperrors.Internal("failed to list providers", err)
	}

	result := make([]fiber.Map, 0, len(providers))
	for _, provider := range providers {
		slots, err := services.ListProviderAvailability(provider.ID, true)
		if err != nil {
			return err
		}
		result = append(result, fiber.Map{
			"id":             provider.ID,
			"name":           provider.FullName,
			"role":           provider.Role,
			"availabilities": slots,
		})
	}
	return c.JSON(result)
}

type UpdateAvailabilityRequest struct {
	DayOfWeek   *int    `json:"day_of_week,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
	Recurrence  *string `json:"recurrence,omitempty"`
}

func UpdateAvailability(c *fiber.Ctx) error {
	requesterID, role := actor(c)
	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Validation("invalid availability slot id")
	}

	var req UpdateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("cannot parse JSON")
	}

	slot, err := services.UpdateAvailability(slotID, requesterID, role, services.SlotPatch{
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
		Recurrence:  req.Recurrence,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":      "availability updated successfully",
		"availability": slot,
	})
}

func DeleteAvailability(c *fiber.Ctx) error {
	requesterID, role := actor(c)
	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Validation("invalid availability slot id")
	}

	if err := services.DeleteAvailability(slotID, requesterID, role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "availability deleted successfully"})
}
