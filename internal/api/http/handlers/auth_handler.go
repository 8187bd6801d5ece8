package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-marketplace/internal/api/dto"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/service"
	"github.com/spec-kit/tutor-marketplace/internal/session"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// AuthHandler exposes registration, login and the whoami endpoint.
type AuthHandler struct {
	auth        *service.AuthService
	affordances []session.Affordance
}

// NewAuthHandler constructs handler. A nil affordance registry falls
// back to the built-in one.
func NewAuthHandler(authService *service.AuthService, affordances []session.Affordance) *AuthHandler {
	if affordances == nil {
		affordances = session.DefaultAffordances
	}
	return &AuthHandler{auth: authService, affordances: affordances}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	account, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account": fiber.Map{
				"id":    account.ID,
				"name":  account.Name,
				"email": account.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	account, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": fiber.Map{
				"id":    account.ID,
				"name":  account.Name,
				"email": account.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /auth/me: resolved role plus the affordance tags
// visible for it. Anonymous callers get guest visibility.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)

	role := domain.RoleGuest
	var user *dto.PrincipalResponse
	if principal != nil {
		role = principal.Role
		user = &dto.PrincipalResponse{
			AccountID: principal.AccountID,
			Name:      principal.Name,
			Email:     principal.Email,
			Claims:    principal.Claims,
		}
	}

	return c.JSON(fiber.Map{"data": dto.MeResponse{
		Role:    role,
		Visible: session.VisibleTags(h.affordances, role),
		User:    user,
	}})
}
