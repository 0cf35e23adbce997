package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	printingapp "github.com/GBR-422777/invoiceninja/internal/application/printing"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/config"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/event"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/logger"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/persistence"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/persistence/models"
	infra "github.com/GBR-422777/invoiceninja/internal/infrastructure/printing"
	"github.com/GBR-422777/invoiceninja/internal/interfaces/http/handler"
	"github.com/GBR-422777/invoiceninja/internal/interfaces/http/middleware"
	"github.com/GBR-422777/invoiceninja/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting render service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with SQL logging through zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithZap(&cfg.Database, log, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Migrate the rendering tables
	if err := db.Migrate(&models.InvoiceDesignModel{}, &models.RenderJobModel{}); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Initialize repositories
	designRepo := persistence.NewGormDesignRepository(db.DB)
	jobRepo := persistence.NewGormRenderJobRepository(db.DB)

	// Seed the built-in design when no default exists
	seeded, err := persistence.EnsureDefaultDesign(context.Background(), designRepo)
	if err != nil {
		log.Fatal("Failed to seed default design", zap.Error(err))
	}
	log.Info("Default design ready", zap.String("name", seeded.Name))

	// Initialize the document builder and application service
	builder := infra.NewBuilder(infra.DefaultDictionary(), log)
	renderService := printingapp.NewRenderService(designRepo, jobRepo, builder, log)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Render failures -> operator notification
	renderFailedHandler := printingapp.NewRenderFailedHandler(log).
		WithNotifier(printingapp.NewLoggingRenderFailedNotifier(log))
	eventBus.Subscribe(renderFailedHandler)

	log.Info("Event handlers registered",
		zap.Strings("render_failed_events", renderFailedHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	renderService.SetEventPublisher(eventBus)

	// Periodic cleanup of old render jobs
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	if cfg.Render.JobRetentionDays > 0 {
		go runJobCleanup(cleanupCtx, jobRepo, cfg.Render.JobRetentionDays, log)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health endpoints live outside API versioning
	systemHandler := handler.NewSystemHandler(db.Ping)
	systemHandler.RegisterRoutes(engine)

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewRenderHandler(renderService))
	r.Register(handler.NewDesignHandler(renderService))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancelCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runJobCleanup deletes render jobs past the retention window, once at
// startup and then daily.
func runJobCleanup(ctx context.Context, jobRepo *persistence.GormRenderJobRepository, retentionDays int, log *zap.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	cleanup := func() {
		deleted, err := jobRepo.DeleteOlderThan(ctx, retentionDays)
		if err != nil {
			log.Warn("Render job cleanup failed", zap.Error(err))
			return
		}
		if deleted > 0 {
			log.Info("Old render jobs deleted",
				zap.Int64("count", deleted),
				zap.Int("retention_days", retentionDays),
			)
		}
	}

	cleanup()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanup()
		}
	}
}
