package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lumis/servicedesk/internal/api/dto"
	"github.com/lumis/servicedesk/internal/domain"
	"github.com/lumis/servicedesk/internal/service"
	"github.com/lumis/servicedesk/pkg/util"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	user, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password, req.Department, req.DealerID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": authResponse(user, token, exp)})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(user, token, exp)})
}

func authResponse(user *domain.User, token string, exp time.Time) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User: dto.UserResponse{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			Department: user.Department,
			DealerID:   user.DealerID,
		},
	}
}
