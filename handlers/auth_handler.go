package handlers

import (
	"errors"
	"time"

	"github.com/brightpath/tutor_match/apperrors"
	config "github.com/brightpath/tutor_match/configs"
	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/notifications"
	"github.com/brightpath/tutor_match/scheduling"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=student tutor counselor"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}

	role := scheduling.RoleStudent
	if req.Role != "" {
		role = scheduling.Role(req.Role)
	}

	newUser := models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("email already exists")
		}
		return apperrors.Internal("failed to create user", err)
	}

	go notifications.SendEmail(newUser.FullName, newUser.Email, "Welcome!",
		"<h1>Welcome!</h1><p>Thank you for registering.</p>")

	response := UserResponse{
		ID:        newUser.ID.String(),
		FullName:  newUser.FullName,
		Email:     newUser.Email,
		Role:      string(newUser.Role),
		CreatedAt: newUser.CreatedAt,
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return apperrors.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return apperrors.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return apperrors.Forbidden("account is deactivated")
	}

	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"role":      string(user.Role),
		"full_name": user.FullName,
		"exp":       time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return apperrors.Internal("failed to create token", err)
	}

	return c.JSON(fiber.Map{
		"token": t,
		"user": UserResponse{
			ID:        user.ID.String(),
			FullName:  user.FullName,
			Email:     user.Email,
			Role:      string(user.Role),
			CreatedAt: user.CreatedAt,
		},
	})
}

func GetMe(c *fiber.Ctx) error {
	userID, _ := actor(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return apperrors.NotFound("user not found")
	}
	return c.JSON(user)
}
