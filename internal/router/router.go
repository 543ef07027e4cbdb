package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/voicehire/interview-api/internal/config"
	"github.com/voicehire/interview-api/internal/handler"
	"github.com/voicehire/interview-api/internal/middleware"
	"github.com/voicehire/interview-api/internal/models"
	"github.com/voicehire/interview-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler      *handler.AuthHandler
	AdminHandler     *handler.AdminHandler
	DashboardHandler *handler.DashboardHandler
	InterviewHandler *handler.InterviewHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		auth.Use("/login", middleware.RateLimit("auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)

		protected := api.Group("/auth", jwtMiddleware)
		deps.AuthHandler.RegisterProtected(protected)
	}

	if deps.AdminHandler != nil {
		admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.AdminHandler.Register(admin)
	}

	candidate := api.Group("/candidate", jwtMiddleware, middleware.RequireRole(models.RoleCandidate))
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(candidate)
	}
	if deps.InterviewHandler != nil {
		candidate.Use("/transcribe", middleware.RateLimit("transcribe", 30, time.Minute))
		deps.InterviewHandler.Register(candidate)
	}
}
