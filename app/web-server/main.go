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
	logger.Info("Starting recommendation service", "version", cfg.App.Version)

	metrics.Init()

	renderer, err := rest.NewTemplateRenderer()
	if err != nil {
		logger.Fatal("Failed to parse templates", err)
	}

	svc, cleanup, err := bootstrap.RecommendationService(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to load model and data", err)
	}
	defer cleanup()

	e := router.New([]string{"*"})
	e.Renderer = renderer
	router.SetupWebRoutes(e, rest.NewWebHandler(svc))
	router.SetupMetricsRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.WebPort)
		logger.Info("Web server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start web server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down web server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Web server shutdown error", err)
	}

	logger.Info("Web server stopped")
}
