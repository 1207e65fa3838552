package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/arena-go-api/internal/config"
	"github.com/noah-isme/arena-go-api/internal/handler"
	"github.com/noah-isme/arena-go-api/internal/middleware"
	"github.com/noah-isme/arena-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	DebateHandler     *handler.DebateHandler
	EvaluationHandler *handler.EvaluationHandler
	FactCheckHandler  *handler.FactCheckHandler
	LiveHandler       *handler.LiveHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.DebateHandler != nil {
		debates := api.Group("/debates")

		// Mutating debate routes require authentication; evaluation runs
		// behind a rate limit since each call may reach the LLM backend.
		debates.Use(func(c *fiber.Ctx) error {
			if c.Method() == fiber.MethodGet {
				return c.Next()
			}
			return jwtMiddleware(c)
		})
		deps.DebateHandler.Register(debates)

		if deps.EvaluationHandler != nil {
			debates.Use("/:id/arguments", middleware.RateLimit("evaluate", 30, time.Minute))
			deps.EvaluationHandler.Register(debates)
		}

		if deps.FactCheckHandler != nil {
			deps.FactCheckHandler.Register(debates)
			deps.FactCheckHandler.RegisterResearch(api)
		}

		if deps.LiveHandler != nil {
			deps.LiveHandler.Register(debates)
		}
	}
}
