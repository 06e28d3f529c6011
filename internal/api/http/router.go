package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Severities     *handlers.SeveritiesHandler
	Categories     *handlers.CategoriesHandler
	Subcategories  *handlers.SubcategoriesHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Reads require the read scope and
// mutations the admin scope, except PATCH /users/:id which is gated on
// manage; ticket routes are admin-only throughout.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api/v1")
	api.Post("/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	read := auth.RequireScopes(auth.ScopeRead)
	manage := auth.RequireScopes(auth.ScopeManage)
	admin := auth.RequireScopes(auth.ScopeAdmin)

	users := protected.Group("/users")
	users.Get("/", read, cfg.Users.List)
	users.Post("/", admin, cfg.Users.Create)
	users.Get("/:id", read, cfg.Users.Get)
	users.Patch("/:id", manage, cfg.Users.Update)
	users.Patch("/:id/password", admin, cfg.Users.ResetPassword)
	users.Delete("/:id", admin, cfg.Users.Delete)

	severities := protected.Group("/severities")
	severities.Get("/", read, cfg.Severities.List)
	severities.Post("/", admin, cfg.Severities.Create)
	severities.Get("/:id", read, cfg.Severities.Get)
	severities.Patch("/:id", admin, cfg.Severities.Update)
	severities.Delete("/:id", admin, cfg.Severities.Delete)

	categories := protected.Group("/categories")
	categories.Get("/", read, cfg.Categories.List)
	categories.Post("/", admin, cfg.Categories.Create)
	categories.Get("/:id", read, cfg.Categories.Get)
	categories.Patch("/:id", admin, cfg.Categories.Update)
	categories.Delete("/:id", admin, cfg.Categories.Delete)

	subcategories := protected.Group("/subcategories")
	subcategories.Get("/", read, cfg.Subcategories.List)
	subcategories.Post("/", admin, cfg.Subcategories.Create)
	subcategories.Get("/:category_id/show", read, cfg.Subcategories.ListByCategory)
	subcategories.Get("/:id", read, cfg.Subcategories.Get)
	subcategories.Patch("/:id", admin, cfg.Subcategories.Update)
	subcategories.Delete("/:id", admin, cfg.Subcategories.Delete)

	tickets := protected.Group("/tickets", admin)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)
	tickets.Post("/:id/comment", cfg.Tickets.AddComment)
}
