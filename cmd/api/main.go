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

	"github.com/samirrijal/locainsight/internal/adapters/http"
	natsadapter "github.com/samirrijal/locainsight/internal/adapters/nats"
	"github.com/samirrijal/locainsight/internal/adapters/openai"
	"github.com/samirrijal/locainsight/internal/core/ports"
	"github.com/samirrijal/locainsight/internal/core/usecases"
	"github.com/samirrijal/locainsight/internal/pkg/config"
	"github.com/samirrijal/locainsight/internal/pkg/logging"
	"github.com/samirrijal/locainsight/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("locainsight-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Completion provider
	provider := openai.New(cfg.Provider.APIKey, cfg.Provider.BaseURL)

	deps := &http.Dependencies{DocsPath: http.DefaultDocsPath}

	// NATS (optional)
	var events ports.EventPublisher
	if cfg.NATS.URL != "" {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, events disabled", "error", err)
		} else {
			defer pub.Close()
			events = pub
			deps.NATS = pub
		}
	}

	// Use cases
	deps.Recommendations = usecases.NewRecommendationService(provider, events, usecases.RecommendationConfig{
		Model:            cfg.Provider.Model,
		MaxTokens:        cfg.Provider.MaxTokens,
		Temperature:      float32(cfg.Provider.Temperature),
		PresencePenalty:  float32(cfg.Provider.PresencePenalty),
		FrequencyPenalty: float32(cfg.Provider.FrequencyPenalty),
		Timeout:          cfg.Provider.TimeoutDuration(),
		CacheMaxAge:      cfg.Recommendations.CacheMaxAge,
	})

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "LocaInsight API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "model", cfg.Provider.Model, "events", events != nil)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight completions time to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Provider.TimeoutDuration()+5*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
