package handlers

import (
	"math"
	"strconv"
	"time"

	"github.com/brightpath/tutor_match/apperrors"
	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/scheduling"
	"github.com/gofiber/fiber/v2"
)

// AdminGetAllBookings lists bookings across the platform with the shared
// filters plus student/provider scoping and pagination.
func AdminGetAllBookings(c *fiber.Ctx) error {
	query, err := bookingFilters(c, database.DB.Model(&models.Booking{}))
	if err != nil {
		return err
	}
	if studentID := c.Query("studentId"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if providerID := c.Query("providerId"); providerID != "" {
		query = query.Where("provider_id = ?", providerID)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return apperrors.Internal("failed to count bookings", err)
	}

	var bookings []models.Booking
	err = query.Preload("Student").Preload("Provider").
		Order("start_time desc").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return apperrors.Internal("failed to list bookings", err)
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"pagination": fiber.Map{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

type providerBookingCount struct {
	ProviderID   string `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	BookingCount int64  `json:"booking_count"`
}

// GetBookingStatistics summarizes platform activity for the admin
// dashboard.
func GetBookingStatistics(c *fiber.Ctx) error {
	counts := map[string]int64{}
	var total int64
	if err := database.DB.Model(&models.Booking{}).Count(&total).Error; err != nil {
		return apperrors.Internal("failed to count bookings", err)
	}
	for _, status := range []scheduling.BookingStatus{
		scheduling.StatusPending, scheduling.StatusConfirmed,
		scheduling.StatusCompleted, scheduling.StatusCancelled,
	} {
		var n int64
		if err := database.DB.Model(&models.Booking{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return apperrors.Internal("failed to count bookings", err)
		}
		counts[string(status)] = n
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfPrevMonth := startOfMonth.AddDate(0, -1, 0)

	var thisMonth, lastMonth int64
	database.DB.Model(&models.Booking{}).
		Where("created_at >= ?", startOfMonth).Count(&thisMonth)
	database.DB.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", startOfPrevMonth, startOfMonth).Count(&lastMonth)

	growthRate := 100.0
	if lastMonth > 0 {
		growthRate = float64(thisMonth-lastMonth) / float64(lastMonth) * 100
	}

	var topProviders []providerBookingCount
	database.DB.Model(&models.Booking{}).
		Select("provider_id, provider_name, COUNT(id) as booking_count").
		Group("provider_id, provider_name").
		Order("booking_count desc").
		Limit(5).
		Scan(&topProviders)

	return c.JSON(fiber.Map{
		"total_bookings": total,
		"by_status":      counts,
		"this_month":     thisMonth,
		"last_month":     lastMonth,
		"growth_rate":    math.Round(growthRate*100) / 100,
		"top_providers":  topProviders,
	})
}

func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	query := database.DB.Order("created_at desc")
	if role := c.Query("role"); role != "" {
		if !scheduling.Role(role).Valid() {
			return apperrors.Validation("invalid role filter")
		}
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		return apperrors.Internal("failed to list users", err)
	}
	return c.JSON(users)
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return apperrors.NotFound("user not found")
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return apperrors.Internal("failed to update user", err)
	}
	return c.JSON(fiber.Map{
		"message": "user status updated",
		"user":    user,
	})
}
