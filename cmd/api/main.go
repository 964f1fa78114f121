package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/konanyao/akwaba/internal/adapters/http"
	natsadapter "github.com/konanyao/akwaba/internal/adapters/nats"
	"github.com/konanyao/akwaba/internal/adapters/upstream"
	"github.com/konanyao/akwaba/internal/adapters/valkey"
	"github.com/konanyao/akwaba/internal/core/ports"
	"github.com/konanyao/akwaba/internal/core/usecases"
	"github.com/konanyao/akwaba/internal/pkg/config"
	"github.com/konanyao/akwaba/internal/pkg/logging"
	"github.com/konanyao/akwaba/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("akwaba-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Calendar-day logic runs in the network's timezone
	loc, err := time.LoadLocation(cfg.Upstream.Timezone)
	if err != nil {
		slog.Warn("unknown timezone, falling back to local", "timezone", cfg.Upstream.Timezone)
		loc = time.Local
	}

	// Upstream booking platform
	api := upstream.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)

	// Cache + persisted session state
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer cache.Close()
	sessionStore := valkey.NewSessionStore(cache, "akwaba")

	// NATS
	events, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, lifecycle events disabled", "error", err)
		events = nil
	} else {
		defer events.Close()
	}

	// Use cases
	sessionSvc := usecases.NewSessionService(api, sessionStore, publisherOrNil(events))
	searchSvc := usecases.NewSearchService(api, loc)
	vocabSvc := usecases.NewVocabularyService(api, cache)
	bookingSvc := usecases.NewBookingService(api, sessionSvc, publisherOrNil(events), loc)
	registrationSvc := usecases.NewRegistrationService(sessionSvc)

	// Re-establish a persisted session before serving
	session := sessionSvc.Restore(ctx)
	slog.Info("session restored", "state", session.State)

	deps := &http.Dependencies{
		Search:       searchSvc,
		Vocabularies: vocabSvc,
		Bookings:     bookingSvc,
		Session:      sessionSvc,
		Registration: registrationSvc,
		Cache:        cache,
	}
	if events != nil {
		deps.NATS = events.Conn()
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Akwaba Travel API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// publisherOrNil keeps a typed nil out of the ports.EventPublisher
// interface when NATS is down.
func publisherOrNil(p *natsadapter.Publisher) ports.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}
