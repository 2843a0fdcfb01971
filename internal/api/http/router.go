package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CoaxnTechnology/Betogether-API/internal/api/http/handlers"
	"github.com/CoaxnTechnology/Betogether-API/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Guest      *handlers.GuestHandler
	Users      *handlers.UsersHandler
	Profile    *handlers.ProfileHandler
	Categories *handlers.CategoriesHandler
	Admin      *handlers.AdminHandler
	Gate       *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public endpoints: session bootstrap and credential exchange.
	api.Post("/guest", cfg.Guest.Start)
	api.Post("/register", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)
	api.Post("/refresh-token", cfg.Users.Refresh)
	api.Post("/admin/login", cfg.Admin.Login)

	// Any valid token (guest, user or admin) may browse.
	browse := api.Group("", cfg.Gate.Handle)
	browse.Get("/categories", cfg.Categories.List)
	browse.Get("/categories/:identifier", cfg.Categories.Get)
	browse.Post("/category/nearest", cfg.Categories.Nearest)

	// User endpoints require a user token; profile edits specifically need
	// an access token, not a refresh token.
	user := api.Group("", cfg.Gate.Handle, auth.RequireUser())
	user.Get("/users", cfg.Users.List)
	user.Get("/users/:id", cfg.Users.Get)
	user.Post("/user/profile", cfg.Profile.Get)

	api.Put("/update-profile", cfg.Gate.Handle, auth.RequireAccessUser(), cfg.Profile.Update)

	// Back-office surface.
	admin := api.Group("/admin", cfg.Gate.Handle, auth.RequireAdmin())
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/cities", cfg.Admin.Cities)

	admin.Post("/categories", cfg.Admin.CreateCategory)
	admin.Get("/categories/export", cfg.Admin.ExportCategories)
	admin.Put("/categories/:id", cfg.Admin.UpdateCategory)
	admin.Delete("/categories/:id", cfg.Admin.DeleteCategory)

	admin.Get("/fake-users", cfg.Admin.ListFakeUsers)
	admin.Post("/fake-users/generate", cfg.Admin.GenerateFakeUsers)
	admin.Patch("/fake-users/status", cfg.Admin.SetFakeUserStatus)
	admin.Post("/fake-users/import", cfg.Admin.ImportFakeUsers)
	admin.Get("/fake-users/export", cfg.Admin.ExportFakeUsers)

	admin.Get("/users/export", cfg.Admin.ExportUsers)

	admin.Get("/settings", cfg.Admin.GetSettings)
	admin.Put("/settings", cfg.Admin.UpdateSettings)
}
