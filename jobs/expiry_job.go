package jobs

import (
	"log"
	"time"

	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/scheduling"
)

// ExpireStalePendingRequests cancels pending bookings whose start time has
// passed without the provider ever confirming them, so dead requests stop
// blocking the provider's calendar.
func ExpireStalePendingRequests() {
	log.Println("Running job: ExpireStalePendingRequests...")

	reason := "Expired: session start time passed before confirmation"
	result := database.DB.Model(&models.Booking{}).
		Where("status = ? AND start_time < ?", scheduling.StatusPending, time.Now()).
		Updates(map[string]any{
			"status":              scheduling.StatusCancelled,
			"cancellation_reason": reason,
		})
	if result.Error != nil {
		log.Printf("Error expiring stale pending requests: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Expired %d stale pending request(s)", result.RowsAffected)
	}
}
