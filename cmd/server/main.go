package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/painel-afiliado/service-affiliate/internal/config"
	"github.com/painel-afiliado/service-affiliate/internal/events"
	"github.com/painel-afiliado/service-affiliate/internal/handlers"
	"github.com/painel-afiliado/service-affiliate/internal/providers/shopee"
	"github.com/painel-afiliado/service-affiliate/internal/routes"
	"github.com/painel-afiliado/service-affiliate/internal/services"
)

func main() {
	// Load .env file in development
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to Redis (optional - report memoization degrades to live fetches)
	var redisClient *redis.Client
	{
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("Redis unavailable, report caching disabled", zap.Error(err))
		} else {
			redisClient = client
			logger.Info("Connected to Redis", zap.String("addr", client.Options().Addr))
		}
		cancel()
	}

	// Connect to NATS (optional - only if configured)
	var eventPublisher *events.Publisher
	if cfg.NATS.URL != "" {
		natsConn, err := nats.Connect(cfg.NATS.URL)
		if err != nil {
			logger.Warn("Failed to connect to NATS, event publishing disabled", zap.Error(err))
		} else {
			logger.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))
			eventPublisher = events.NewPublisher(natsConn, logger)
			defer natsConn.Close()
		}
	}

	// Initialize the affiliate pipeline. Missing credentials keep the server
	// up; every affiliate endpoint then answers with a configuration error.
	var reportService *services.ReportService
	if !cfg.Affiliate.IsConfigured() {
		logger.Warn("Affiliate credentials missing, pipeline disabled (set AFFILIATE_APP_ID and AFFILIATE_SECRET)")
	} else {
		client, err := shopee.NewClient(&shopee.ClientConfig{
			AppID:    cfg.Affiliate.AppID,
			Secret:   cfg.Affiliate.Secret,
			Endpoint: cfg.Affiliate.Endpoint,
			Logger:   logger,
		})
		if err != nil {
			logger.Fatal("Failed to create affiliate client", zap.Error(err))
		}

		cacheService := services.NewReportCacheService(
			redisClient,
			time.Duration(cfg.Affiliate.CacheTTLMinutes)*time.Minute,
			logger,
		)
		reportService = services.NewReportService(client, cacheService, eventPublisher, logger)
	}

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(reportService, logger)
	offerHandler := handlers.NewOfferHandler(reportService, logger)
	shortLinkHandler := handlers.NewShortLinkHandler(reportService, logger)

	// Set Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(routes.RequestLogger(logger))

	// CORS - use environment-based configuration
	allowedOrigins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	router.Use(routes.CORSWithOrigins(allowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "affiliate",
			"time":    time.Now().UTC(),
		})
	})

	// Setup routes using the routes package
	routes.SetupRoutes(router, &routes.RouteConfig{
		ReportHandler:    reportHandler,
		OfferHandler:     offerHandler,
		ShortLinkHandler: shortLinkHandler,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Affiliate service starting on port " + cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newLogger builds the zap logger for the given environment.
func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to build development logger: %w", err)
	}
	return logger, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
