package notifications

import (
	"encoding/json"
	"log"

	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/websocket"
	"github.com/google/uuid"
)

// Dispatcher fans one event out to the three delivery channels: a persisted
// in-app notification row, a websocket push if the user is online, and a
// best-effort email. Every channel failure is logged and swallowed; the
// caller never sees an error.
type Dispatcher struct {
	hub *websocket.Hub
}

func NewDispatcher(hub *websocket.Hub) *Dispatcher {
	return &Dispatcher{hub: hub}
}

func (d *Dispatcher) Notify(userID uuid.UUID, kind, title, content string, metadata map[string]any) {
	metaJSON := ""
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			log.Printf("Failed to marshal notification metadata for user %s: %v", userID, err)
		} else {
			metaJSON = string(raw)
		}
	}

	notification := models.Notification{
		UserID:   userID,
		Kind:     kind,
		Title:    title,
		Content:  content,
		Metadata: metaJSON,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to persist notification for user %s: %v", userID, err)
	}

	if d.hub != nil {
		d.hub.SendToUser(userID, notification)
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("Failed to load notification recipient %s: %v", userID, err)
		return
	}
	SendEmail(user.FullName, user.Email, title, "<p>"+content+"</p>")
}
