package main

import (
	"animeRecommender/app/echo-server/router"
	"animeRecommender/internal/bootstrap"
	"animeRecommender/internal/rest"
	"animeRecommender/pkg/config"
	"animeRecommender/pkg/logger"
	"animeRecommender/pkg/metrics"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	metrics.Init()

	// Artifacts must load before any traffic is served
	svc, cleanup, err := bootstrap.RecommendationService(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to load model and data", err)
	}
	defer cleanup()

	logger.Info("Model and data loaded successfully",
		"ratings_source", cfg.Artifacts.RatingsSource,
		"cache", cfg.Redis.Enabled,
	)

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(svc)

	// Init echo
	e := router.New([]string{"*"})
	router.SetupRecommendationRoutes(e, recommendationHandler)
	router.SetupMetricsRoutes(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
