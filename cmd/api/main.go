package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"userapi/internal/config"
	"userapi/internal/database"
	"userapi/internal/database/migration"
	handlers "userapi/internal/http/handler"
	"userapi/internal/http/middleware"
	"userapi/internal/otel"
	"userapi/internal/repository/postgres"
	"userapi/internal/service"
	"userapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	shutdownTracing, err := otel.Init(context.Background(), loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// The record store is a hard dependency: no listener without it.
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migration.EnsureMigrated(migrateCtx, db, loc, cfg.Database.Host); err != nil {
		cancel()
		log.Fatalf("failed to migrate database: %v", err)
	}
	cancel()

	// The blob store connects in the background and publishes into the
	// handle; until then, attachment routes answer 503.
	blobs := storage.NewHandle()
	go func() {
		store, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Printf("failed to initialize object storage: %v", err)
			return
		}
		blobs.Set(store)
	}()

	userRepo := postgres.NewUserPostgres(db)
	userSvc := service.NewUserService(blobs, userRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
	}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(prom.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	fileURLExpiry := time.Duration(cfg.FileURLExpirySec) * time.Second
	handlers.RegisterRoutes(app, db, userSvc, fileURLExpiry)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
