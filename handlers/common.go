package handlers

import (
	"github.com/brightpath/tutor_match/scheduling"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var validate = validator.New()

// actor pulls the verified subject out of the JWT placed in Locals by the
// auth middleware. The token is the authoritative actor identity for every
// permission check.
func actor(c *fiber.Ctx) (uuid.UUID, scheduling.Role) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role, _ := claims["role"].(string)
	return userID, scheduling.Role(role)
}

func actorName(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	name, _ := claims["full_name"].(string)
	return name
}
