package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/brightpath/tutor_match/apperrors"
	config "github.com/brightpath/tutor_match/configs"
	"github.com/brightpath/tutor_match/database"
	"github.com/brightpath/tutor_match/models"
	"github.com/brightpath/tutor_match/scheduling"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProviderProfileRequest struct {
	Headline   string  `json:"headline" validate:"required"`
	Bio        string  `json:"bio" validate:"required"`
	Subjects   string  `json:"subjects,omitempty"`
	HourlyRate float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
}

func UpsertMyProfile(c *fiber.Ctx) error {
	userID, role := actor(c)
	if !role.IsProvider() {
		return apperrors.Forbidden("only tutors and counselors can edit a provider profile")
	}

	var req ProviderProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	var profile models.ProviderProfile
	err := database.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		profile = models.ProviderProfile{UserID: userID}
	}

	subjects := req.Subjects
	profile.Headline = &req.Headline
	profile.Bio = &req.Bio
	profile.Subjects = &subjects
	profile.HourlyRate = req.HourlyRate

	if err := database.DB.Save(&profile).Error; err != nil {
		return apperrors.Internal("failed to save profile", err)
	}
	return c.JSON(profile)
}

func GetMyProfile(c *fiber.Ctx) error {
	userID, _ := actor(c)

	var profile models.ProviderProfile
	if err := database.DB.Preload("User").First(&profile, "user_id = ?", userID).Error; err != nil {
		return apperrors.NotFound("provider profile not found")
	}
	return c.JSON(profile)
}

func GetProviderProfile(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("providerId"))
	if err != nil {
		return apperrors.Validation("invalid provider id")
	}

	var profile models.ProviderProfile
	if err := database.DB.Preload("User").First(&profile, "user_id = ?", providerID).Error; err != nil {
		return apperrors.NotFound("provider profile not found")
	}
	return c.JSON(profile)
}

// ListProviders is the public provider directory, optionally filtered by
// role or subject substring. Plain filtering, no ranking.
func ListProviders(c *fiber.Ctx) error {
	query := database.DB.Preload("User").
		Joins("JOIN users ON users.id = provider_profiles.user_id").
		Where("users.role IN ? AND users.is_active = ?",
			[]scheduling.Role{scheduling.RoleTutor, scheduling.RoleCounselor}, true)

	if role := c.Query("role"); role != "" {
		if !scheduling.Role(role).IsProvider() {
			return apperrors.Validation("role filter must be tutor or counselor")
		}
		query = query.Where("users.role = ?", role)
	}
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("provider_profiles.subjects ILIKE ?", "%"+subject+"%")
	}

	var profiles []models.ProviderProfile
	if err := query.Find(&profiles).Error; err != nil {
		return apperrors.Internal("failed to list providers", err)
	}
	return c.JSON(profiles)
}

// GenerateUploadSignature creates a signed Cloudinary upload ticket so the
// frontend can upload an avatar directly.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return apperrors.Internal("failed to initialize Cloudinary", err)
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return apperrors.Internal("failed to parse Cloudinary URL", err)
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: "tutor_match_avatars",
	})
	if err != nil {
		return apperrors.Internal("failed to prepare signature params", err)
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return apperrors.Internal("failed to sign upload params", err)
	}

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   cld.Config.Cloud.APIKey,
		"folder":    "tutor_match_avatars",
	})
}

type SetAvatarRequest struct {
	AvatarURL string `json:"avatar_url" validate:"required,url"`
}

func SetAvatar(c *fiber.Ctx) error {
	userID, role := actor(c)
	if !role.IsProvider() {
		return apperrors.Forbidden("only tutors and counselors can set a profile avatar")
	}

	var req SetAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	var profile models.ProviderProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		return apperrors.NotFound("provider profile not found")
	}

	profile.AvatarURL = &req.AvatarURL
	if err := database.DB.Save(&profile).Error; err != nil {
		return apperrors.Internal("failed to save avatar", err)
	}
	return c.JSON(profile)
}
