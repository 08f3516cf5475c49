package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stayline/guest-portal/internal/application"
	"github.com/stayline/guest-portal/internal/config"
	"github.com/stayline/guest-portal/internal/handler"
	"github.com/stayline/guest-portal/internal/hotelapi"
	"github.com/stayline/guest-portal/internal/logger"
	"github.com/stayline/guest-portal/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "guest-portal")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting guest-portal",
		zap.String("port", cfg.Port),
		zap.String("hotel_api", cfg.HotelAPI.BaseURL),
	)

	// Initialize the hotel API client
	apiClient := hotelapi.NewClient(cfg.HotelAPI.BaseURL, cfg.HotelAPI.Timeout, log)

	// Optional redis cache for hotel info
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, falling back to in-process cache", zap.Error(err))
			rdb = nil
		}
		cancel()
	}

	// Initialize application services
	hotelInfoSvc := application.NewHotelInfoService(apiClient, rdb, cfg.Redis.TTL, log)
	availabilitySvc := application.NewAvailabilityService(apiClient, log)
	reservationSvc := application.NewReservationService(availabilitySvc, apiClient, hotelInfoSvc, log)
	bookingSvc := application.NewBookingService(apiClient, log)
	reportSvc := application.NewReportService(apiClient, log)
	defer reportSvc.Close()

	// Initialize HTTP handlers
	guestHandler := handler.NewGuestHandler(reservationSvc, bookingSvc, hotelInfoSvc)
	adminHandler := handler.NewAdminHandler(bookingSvc, reportSvc)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.TokenPassthrough())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "guest-portal"})
	})

	// Register routes; everything beyond hotel-info requires a token the
	// collaborator can validate.
	api := router.Group("/api")
	guestHandler.RegisterRoutes(api)
	adminGroup := api.Group("")
	adminGroup.Use(middleware.RequireToken())
	adminHandler.RegisterRoutes(adminGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down guest-portal...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("guest-portal stopped")
}
