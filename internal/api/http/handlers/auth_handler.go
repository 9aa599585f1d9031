package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthHandler manages registration, login and credential administration.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	if req.UserID == 0 || req.RoleID == 0 {
		return apperrors.NewValidationError("user_id and role_id required", nil)
	}

	access, err := h.service.Register(c.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		UserID:   req.UserID,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": accessResponse(access)})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, expiresAt, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{Token: token, ExpiresAt: expiresAt}})
}

// ListAccesses GET /accesses.
func (h *AuthHandler) ListAccesses(c *fiber.Ctx) error {
	accesses, err := h.service.ListAccesses(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AccessResponse, 0, len(accesses))
	for i := range accesses {
		items = append(items, accessResponse(&accesses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteAccess DELETE /accesses/:id.
func (h *AuthHandler) DeleteAccess(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteAccess(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
