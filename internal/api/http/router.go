package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Applications   *handlers.ApplicationsHandler
	Bookings       *handlers.BookingsHandler
	Chat           *handlers.ChatHandler
	Ads            *handlers.AdsHandler
	Sync           *handlers.SyncHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The auth middleware is attached to
// every caller-facing group: it only loads principals, individual
// routes decide what anonymity means.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	apps := app.Group("/applications", cfg.AuthMiddleware.Handle)
	apps.Post("/", cfg.Applications.Submit)
	apps.Post("/approve", auth.RequireStaff(), cfg.Applications.Approve)
	apps.Get("/pending", auth.RequireStaff(), cfg.Applications.ListPending)

	app.Post("/bookings", cfg.AuthMiddleware.Handle, cfg.Bookings.Book)
	app.Get("/bookings", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Bookings.List)
	app.Post("/chat/messages", cfg.AuthMiddleware.Handle, cfg.Chat.Create)
	app.Get("/chat/messages", cfg.Chat.History)

	app.Get("/ads", cfg.Ads.List)

	// Registered for all methods so non-POST returns the webhook's own
	// 405 contract rather than fiber's default.
	app.All("/webhooks/discord-ads", cfg.Sync.Handle)
}
