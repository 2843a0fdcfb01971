package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/CoaxnTechnology/Betogether-API/internal/api/dto"
	"github.com/CoaxnTechnology/Betogether-API/internal/auth"
	"github.com/CoaxnTechnology/Betogether-API/internal/service"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

// ProfileHandler manages profile read and edit endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
	baseURL  string
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profileService *service.ProfileService, baseURL string) *ProfileHandler {
	return &ProfileHandler{profiles: profileService, baseURL: baseURL}
}

// Get POST /api/user/profile. Looks up a profile by email.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	var req dto.GetProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	user, err := h.profiles.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user, h.baseURL)})
}

// Update PUT /api/update-profile. Edits the authenticated user's profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, updated, err := h.profiles.UpdateProfile(c.Context(), principal.User.ID, service.UpdateProfileInput{
		Name:         req.Name,
		Mobile:       req.Mobile,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		City:         req.City,
		Languages:    req.Languages,
		Interests:    req.Interests,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UpdateProfileResponse{
		User:    dto.NewUserResponse(user, h.baseURL),
		Updated: updated,
	}})
}
