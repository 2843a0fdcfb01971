package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CoaxnTechnology/Betogether-API/internal/api/dto"
	"github.com/CoaxnTechnology/Betogether-API/internal/service"
)

// GuestHandler exposes guest session issuance.
type GuestHandler struct {
	auth *service.AuthService
}

// NewGuestHandler constructs handler.
func NewGuestHandler(authService *service.AuthService) *GuestHandler {
	return &GuestHandler{auth: authService}
}

// Start POST /api/guest. Issues a browse-only token without touching storage.
func (h *GuestHandler) Start(c *fiber.Ctx) error {
	token, guestID, exp, err := h.auth.StartGuestSession()
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.GuestSessionResponse{
		GuestID:     guestID,
		AccessToken: token,
		ExpiresAt:   exp,
		TokenType:   "bearer",
	}})
}
