// Package bootstrap builds the recommendation service shared by both servers.
package bootstrap

import (
	"animeRecommender/business/recommendation"
	"animeRecommender/internal/repository/artifact"
	psqlRepo "animeRecommender/internal/repository/postgres"
	redisRepo "animeRecommender/internal/repository/redis"
	"animeRecommender/pkg/config"
	"animeRecommender/pkg/database"
	redisClient "animeRecommender/pkg/database/redis"
	"animeRecommender/pkg/logger"
	"context"
	"fmt"
)

// RecommendationService loads the artifacts and wires the optional ratings
// database and cache. On success the returned cleanup releases any
// connections it opened.
func RecommendationService(ctx context.Context, cfg *config.Config) (*recommendation.Service, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	bundle, err := artifact.Load(ctx, cfg.Artifacts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load artifacts: %w", err)
	}

	var stats recommendation.RatingStatsRepository = bundle
	if cfg.Artifacts.RatingsSource == config.RatingsSourcePostgres {
		db, err := database.InitPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := database.ClosePostgres(db); err != nil {
				logger.Error("Failed to close database", err)
			}
		})
		stats = psqlRepo.NewRatingRepository(db)
		logger.Info("Database connected successfully")
	}

	var cache recommendation.Cache
	if cfg.Redis.Enabled {
		client, err := redisClient.NewRedisClient(cfg.Redis)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := redisClient.CloseRedisClient(client); err != nil {
				logger.Error("Failed to close Redis", err)
			}
		})
		cache = redisRepo.NewRecommendationCache(client, cfg.Redis.TTL)
		logger.Info("Redis connected successfully", "ttl", cfg.Redis.TTL.String())
	}

	svc := recommendation.NewService(bundle, stats, cache, recommendation.Config{
		UserWeight:       cfg.Recommendation.UserWeight,
		ContentWeight:    cfg.Recommendation.ContentWeight,
		SimilarUsers:     cfg.Recommendation.SimilarUsers,
		Candidates:       cfg.Recommendation.Candidates,
		ContentNeighbors: cfg.Recommendation.ContentNeighbors,
		TopN:             cfg.Recommendation.TopN,
	})

	return svc, cleanup, nil
}
