package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/notifications"
	"github.com/brightpath/tutor_match/scheduling"
)

// SendSessionReminders emails both parties of every confirmed booking
// starting in roughly one hour. Runs every five minutes; the window is
// sized to the cron interval so each booking is picked up once.
func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.Booking
	err := database.DB.
		Preload("Student").
		Preload("Provider").
		Where("status = ? AND start_time BETWEEN ? AND ?", scheduling.StatusConfirmed, lowerBound, upperBound).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	for _, booking := range upcoming {
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		subject := "Reminder: Your Session Starts in 1 Hour!"
		body := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your session is scheduled to start in one hour at %s.</p>",
			booking.StartTime.Format(time.Kitchen),
		)

		go notifications.SendEmail(booking.Student.FullName, booking.Student.Email, subject, body)
		go notifications.SendEmail(booking.Provider.FullName, booking.Provider.Email, subject, body)
	}
}
