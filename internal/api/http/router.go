package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/accumanage/portal/internal/api/http/handlers"
	"github.com/accumanage/portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Admin      *handlers.AdminHandler
	Billing    *handlers.BillingHandler
	Pages      *handlers.PagesHandler
	EdgeGuard  *auth.EdgeGuard
	RouteGuard *auth.RouteGuard
	StaticDir  string
}

// RegisterRoutes wires HTTP routes. The edge guard runs ahead of every route;
// API routes carry their own route guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.EdgeGuard.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.StaticDir != "" {
		app.Static("/static", cfg.StaticDir)
	}

	app.Get("/login", cfg.Pages.Login)
	app.Get("/admin/login", cfg.Pages.AdminLogin)
	app.Get("/dashboard", cfg.Pages.Dashboard)
	app.Get("/admin/dashboard", cfg.Pages.AdminDashboard)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)
	authGroup.Post("/admin/logout", cfg.Auth.AdminLogout)
	authGroup.Get("/me", cfg.RouteGuard.Require(auth.AnyRole), cfg.Auth.Me)

	api.Get("/billing/invoices", cfg.RouteGuard.Require(auth.AnyRole), cfg.Billing.ListInvoices)

	admin := api.Group("/admin")
	admin.Get("/users", cfg.RouteGuard.Require(auth.PrivilegedRoles), cfg.Admin.ListUsers)
	admin.Get("/metrics", cfg.RouteGuard.Require(auth.PrivilegedRoles), cfg.Admin.Metrics)
	admin.Patch("/users/:id/role", cfg.RouteGuard.Require(auth.SuperadminOnly), cfg.Admin.ChangeRole)
	admin.Delete("/users/:id", cfg.RouteGuard.Require(auth.SuperadminOnly), cfg.Admin.DeleteUser)
}
