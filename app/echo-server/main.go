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

	"priceWise/app/echo-server/router"
	"priceWise/business/pricing"
	kafkaRepo "priceWise/internal/kafka"
	"priceWise/internal/middleware"
	psqlRepo "priceWise/internal/repository/postgres"
	redisRepo "priceWise/internal/repository/redis"
	"priceWise/internal/rest"
	"priceWise/pkg/config"
	"priceWise/pkg/database"
	redisdb "priceWise/pkg/database/redis"
	"priceWise/pkg/logger"
	"priceWise/pkg/metrics"
	"priceWise/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting PriceWise", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init repo
	historyRepo := psqlRepo.NewSalesHistoryRepository(db)
	artifactRepo := psqlRepo.NewPricingArtifactRepository(db, cfg.Pricing.ArtifactEncryptionKey)
	configRepo := psqlRepo.NewPricingConfigRepository(db)

	var decisionCache pricing.DecisionCache
	if cfg.Redis.Enabled {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() { _ = redisdb.CloseRedisClient(redisClient) }()
		decisionCache = redisRepo.NewDecisionCache(redisClient)
		logger.Info("Decision cache enabled")
	}

	var publisher pricing.DecisionPublisher
	if cfg.Kafka.Enabled {
		producer := kafkaRepo.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() { _ = producer.Close() }()
		publisher = producer
		logger.Info("Decision publisher enabled", "topic", cfg.Kafka.Topic)
	}

	// Init service
	pricingService := pricing.NewPricingService(
		historyRepo,
		artifactRepo,
		configRepo,
		decisionCache,
		publisher,
		pricing.DefaultConfig(),
		cfg.Pricing.ArtifactName,
	)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 5*time.Minute)
	if cfg.Pricing.FitOnStartup {
		if _, err := pricingService.Fit(startupCtx); err != nil {
			logger.Fatal("Failed to fit pricing models", "error", err)
		}
	} else if err := pricingService.LoadArtifact(startupCtx); err != nil {
		logger.Warn("No pricing artifact loaded; run the admin fit endpoint", "error", err)
	}
	cancelStartup()

	// Init handler
	pricingHandler := rest.NewPricingHandler(pricingService)
	adminHandler := rest.NewPricingAdminHandler(pricingService)
	authHandler := rest.NewAuthHandler(cfg.Auth.AdminClientID, cfg.Auth.AdminClientSecretHash)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler)
	router.SetupPricingRoutes(api, pricingHandler)
	router.SetupPricingAdminRoutes(api, adminHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
