package handlers

import "github.com/gofiber/fiber/v2"

// PagesHandler serves the browser entry points. The edge guard decides who
// reaches them; the bodies are placeholders for the front-end bundle.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Login handles GET /login.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

// AdminLogin handles GET /admin/login.
func (h *PagesHandler) AdminLogin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "admin_login"})
}

// Dashboard handles GET /dashboard.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "dashboard"})
}

// AdminDashboard handles GET /admin/dashboard.
func (h *PagesHandler) AdminDashboard(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "admin_dashboard"})
}
