package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/konanyao/akwaba/internal/pkg/metrics"
)

// SetupRoutes registers all routes and the shared middleware chain.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")

	// Trip search, filters, listing
	v1.Post("/trips/search", timeout.NewWithContext(SearchHandler(deps), 20*time.Second))
	v1.Put("/trips/filters", SetFiltersHandler(deps))
	v1.Get("/trips/listing", ListingHandler(deps))
	v1.Get("/trips/grouped", GroupedHandler(deps))
	v1.Get("/companies", timeout.NewWithContext(CompaniesHandler(deps), 15*time.Second))
	v1.Get("/cities", timeout.NewWithContext(CitiesHandler(deps), 15*time.Second))
	v1.Get("/routes", timeout.NewWithContext(AllRoutesHandler(deps), 15*time.Second))

	// Session
	v1.Post("/auth/login", timeout.NewWithContext(LoginHandler(deps), 15*time.Second))
	v1.Post("/auth/logout", timeout.NewWithContext(LogoutHandler(deps), 15*time.Second))
	v1.Get("/session", SessionHandler(deps))
	v1.Post("/session/restore", timeout.NewWithContext(RestoreHandler(deps), 15*time.Second))

	// Registration wizard
	v1.Post("/register/validate", ValidateStepHandler(deps))
	v1.Post("/register/next", NextStepHandler(deps))
	v1.Post("/register/password-strength", PasswordStrengthHandler(deps))
	v1.Post("/register", timeout.NewWithContext(SubmitRegistrationHandler(deps), 15*time.Second))

	// Protected: profile and bookings sit behind the authorization guard
	authed := v1.Group("", RequireAuth(deps))
	authed.Put("/profile", timeout.NewWithContext(UpdateProfileHandler(deps), 15*time.Second))
	authed.Get("/bookings", timeout.NewWithContext(BookingsHandler(deps), 15*time.Second))
	authed.Post("/bookings/:id/cancel", timeout.NewWithContext(CancelBookingHandler(deps), 15*time.Second))
	authed.Get("/bookings/:id/ticket", timeout.NewWithContext(TicketHandler(deps), 30*time.Second))
	authed.Post("/bookings/:id/modify", ModifyBookingHandler(deps))
}
