package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lumis/servicedesk/internal/api/http/handlers"
	"github.com/lumis/servicedesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Search         *handlers.SearchHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/stats", cfg.Tickets.Stats)
	tickets.Post("/sla/sweep", auth.RequireStaff(), cfg.Tickets.SweepSla)
	tickets.Get("/number/:number", cfg.Tickets.GetTicketByNumber)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/status", cfg.Tickets.ChangeStatus)
	tickets.Post("/:id/assign", auth.RequireStaff(), cfg.Tickets.Assign)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id/activities", cfg.Tickets.ListActivities)
	tickets.Get("/:id/participants", cfg.Tickets.ListParticipants)
	tickets.Post("/:id/convert", auth.RequireStaff(), cfg.Tickets.Convert)

	search := app.Group("/search", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	search.Get("", cfg.Search.Search)
	search.Post("/index/:type/:id", auth.RequireStaff(), cfg.Search.Build)
	search.Get("/index/:type/:id", auth.RequireStaff(), cfg.Search.Get)
}
