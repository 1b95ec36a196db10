// File: bookview/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookview/config"
	"bookview/handlers"
	"bookview/middleware"
	"bookview/models"
	"bookview/routes"
	"bookview/services/backend"
	"bookview/services/geocode"
	"bookview/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitGeocodeCache()
	utils.StartHealthMonitor(utils.GetGeocodeCacheClient(), config.AppConfig.BackendBaseURL)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Outbound clients.
	backendClient := backend.NewClient(config.AppConfig.BackendBaseURL, logger)
	geocoder := geocode.NewCachedGeocoder(
		geocode.NewGoogleGeocoder(config.AppConfig.GoogleAPIKey, logger),
		utils.GetGeocodeCacheClient(),
		time.Duration(config.AppConfig.GeocodeCacheTTLMin)*time.Minute,
		logger,
	)

	defaultView := models.Viewport{
		Lat:  config.AppConfig.DefaultMapLat,
		Lng:  config.AppConfig.DefaultMapLng,
		Zoom: config.AppConfig.DefaultMapZoom,
	}
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute

	// Handlers.
	chatHandler := handlers.NewChatHandler(backendClient, sessionTTL, logger)
	landingHandler := handlers.NewLandingHandler(backendClient, geocoder, defaultView, sessionTTL, logger)

	routes.RegisterRoutes(router, chatHandler, landingHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
