package main

import (
	"animeRecommender/business/ingestion"
	"animeRecommender/internal/repository/gcs"
	"animeRecommender/pkg/config"
	"animeRecommender/pkg/logger"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the ingestion config")
	flag.Parse()

	logger.Init(os.Getenv("APP_ENV"))

	if err := run(*configPath); err != nil {
		logger.Fatal("Data ingestion failed", err)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadIngestion(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := gcs.NewObjectStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to cloud storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage client", err)
		}
	}()

	return ingestion.NewIngestor(store, *cfg).Run(ctx)
}
