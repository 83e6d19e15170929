package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/accumanage/portal/internal/api/dto"
	"github.com/accumanage/portal/internal/auth"
	"github.com/accumanage/portal/internal/domain"
	"github.com/accumanage/portal/internal/service"
	apperrors "github.com/accumanage/portal/pkg/util"
)

// AuthHandler exposes the session endpoints for both audiences.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.respondSession(c, http.StatusCreated, result, domain.SessionScopeGeneral)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.login(c, domain.SessionScopeGeneral)
}

// AdminLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, domain.SessionScopeAdmin)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return h.logout(c, domain.SessionScopeGeneral)
}

// AdminLogout handles POST /api/auth/admin/logout.
func (h *AuthHandler) AdminLogout(c *fiber.Ctx) error {
	return h.logout(c, domain.SessionScopeAdmin)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.FromClaims(claims)})
}

func (h *AuthHandler) login(c *fiber.Ctx, scope domain.SessionScope) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password, scope)
	if err != nil {
		return err
	}
	return h.respondSession(c, http.StatusOK, result, scope)
}

func (h *AuthHandler) logout(c *fiber.Ctx, scope domain.SessionScope) error {
	cookies := h.auth.Logout(c.UserContext(), scope, c.Cookies(auth.TokenCookie))
	auth.SetCookies(c, cookies)
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

func (h *AuthHandler) respondSession(c *fiber.Ctx, status int, result *service.LoginResult, scope domain.SessionScope) error {
	auth.SetCookies(c, result.Cookies)
	return c.Status(status).JSON(fiber.Map{
		"data": dto.SessionResponse{
			User:  dto.FromUser(result.User),
			Scope: scope,
		},
	})
}
