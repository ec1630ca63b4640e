package handlers

import (
	"log"

	"github.com/brightpath/tutor_match/apperrors"
	config "github.com/brightpath/tutor_match/configs"
	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// NotificationHub is the push channel shared with the dispatcher; main
// wires it before the routes are mounted.
var NotificationHub *websocket.Hub

func GetMyNotifications(c *fiber.Ctx) error {
	userID, _ := actor(c)

	query := database.DB.Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var items []models.Notification
	if err := query.Order("created_at desc").Limit(100).Find(&items).Error; err != nil {
		return apperrors.Internal("failed to list notifications", err)
	}
	return c.JSON(items)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	userID, _ := actor(c)
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.Validation("invalid notification id")
	}

	var notification models.Notification
	if err := database.DB.First(&notification, "id = ? AND user_id = ?", notificationID, userID).Error; err != nil {
		return apperrors.NotFound("notification not found")
	}

	notification.IsRead = true
	if err := database.DB.Save(&notification).Error; err != nil {
		return apperrors.Internal("failed to update notification", err)
	}
	return c.JSON(notification)
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, _ := actor(c)

	err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return apperrors.Internal("failed to update notifications", err)
	}
	return c.JSON(fiber.Map{"message": "all notifications marked as read"})
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, err
	}
	return token.Claims.(jwt.MapClaims), nil
}

// ServeNotificationsWs authenticates a websocket client via an initial auth
// frame, then keeps the socket registered with the hub until it closes.
func ServeNotificationsWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	NotificationHub.Register(client)
	defer func() {
		NotificationHub.Unregister(client)
		c.Close()
	}()

	// Notifications flow one way; reads only track connection liveness.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			}
			return
		}
	}
}
