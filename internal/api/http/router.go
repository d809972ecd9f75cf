package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/http/handlers"
	"github.com/spec-kit/ticket-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	staff := auth.RequireStaff()

	tickets := protected.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", staff, cfg.Tickets.ListTickets)
	tickets.Get("/mine", cfg.Tickets.ListMyTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id/answer", staff, cfg.Tickets.AnswerTicket)
	tickets.Put("/:id/status", staff, cfg.Tickets.UpdateStatus)
	tickets.Delete("/:id", staff, cfg.Tickets.DeleteTicket)
	tickets.Post("/:id/products", staff, cfg.Tickets.LinkProduct)
	tickets.Get("/:id/products", staff, cfg.Tickets.ListProductLinks)
	tickets.Post("/:id/users", staff, cfg.Tickets.LinkUser)

	protected.Get("/users/:userId/tickets", staff, cfg.Tickets.ListUserTickets)

	protected.Get("/products", cfg.Catalog.ListProducts)
	protected.Post("/products", staff, cfg.Catalog.CreateProduct)
	protected.Post("/firms", staff, cfg.Catalog.CreateFirm)
	protected.Post("/firms/:id/products", staff, cfg.Catalog.LinkFirmProduct)
}
