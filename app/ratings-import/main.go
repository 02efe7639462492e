package main

import (
	"animeRecommender/internal/repository/artifact"
	psqlRepo "animeRecommender/internal/repository/postgres"
	"animeRecommender/pkg/config"
	"animeRecommender/pkg/database"
	"animeRecommender/pkg/logger"
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
)

func main() {
	batchSize := flag.Int("batch", 5000, "rows per insert batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	if err := run(cfg, *batchSize); err != nil {
		logger.Fatal("Ratings import failed", err)
	}
}

func run(cfg *config.Config, batchSize int) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ratings, err := artifact.LoadRatings(ctx, cfg.Artifacts.Ratings)
	if err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}
	logger.Info("Ratings loaded", "path", cfg.Artifacts.Ratings, "rows", len(ratings))

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.ClosePostgres(db); err != nil {
			logger.Error("Failed to close database", err)
		}
	}()

	if err := psqlRepo.NewRatingRepository(db).Import(ctx, ratings, batchSize); err != nil {
		return fmt.Errorf("failed to import ratings: %w", err)
	}

	logger.Info("Ratings imported", "rows", len(ratings))
	return nil
}
