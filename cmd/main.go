package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/handlers"
	"catalog-sync-service/internal/middleware"
	"catalog-sync-service/internal/reports"
	"catalog-sync-service/internal/store"
	syncpipeline "catalog-sync-service/internal/sync"
)

// @title Catalog Sync API
// @version 1.0.0
// @description Inventory synchronization and order reporting service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8089
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize database unless the deployment runs document-only
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis client
	redisClient := initRedis(cfg)

	// Initialize services
	syncService := syncpipeline.NewService(cfg, db, logger)
	reportService := reports.NewService(cfg, db, logger)
	docStore := store.NewDocumentStore(cfg.DataDir)

	// Initialize handlers
	syncHandler := handlers.NewSyncHandler(syncService, redisClient, logger)
	catalogHandler := handlers.NewCatalogHandler(docStore, redisClient, logger)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize report scheduler
	var scheduler *reports.Scheduler
	if cfg.ScheduleEnabled {
		scheduler, err = reports.NewScheduler(
			cfg.ReportTimezone, cfg.ReportHour, cfg.ReportMinute,
			cfg.ReportDir, cfg.ReportRetentionDays,
			func(now time.Time) error {
				_, genErr := reportService.Generate(now)
				return genErr
			},
			logger.WithField("component", "scheduler"))
		if err != nil {
			log.Fatal("Failed to initialize report scheduler:", err)
		}
		scheduler.Start()
	} else {
		log.Println("SCHEDULE_ENABLED is false, skipping report scheduler")
	}

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Health check endpoints
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/sync", syncHandler.TriggerSync)
		api.GET("/sync/runs", syncHandler.GetSyncRuns)

		api.POST("/reports/generate", reportHandler.GenerateReport)

		storefront := api.Group("/storefront")
		{
			storefront.GET("/catalog", catalogHandler.GetCatalog)
			storefront.GET("/catalog/:view", catalogHandler.GetView)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Catalog sync service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down catalog-sync-service...")

	if scheduler != nil {
		scheduler.Stop()
	}

	log.Println("Catalog sync service stopped")
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DocumentOnly {
		log.Println("DOCUMENT_ONLY is set, catalog document is authoritative (no database)")
		return nil, nil
	}
	return config.InitDB(cfg)
}

func initRedis(cfg *config.Config) *redis.Client {
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		return nil
	}
	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
		return nil
	}
	log.Println("✓ Redis connected successfully")
	return client
}
