package redis

import (
	"animeRecommender/domain"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// kv is the subset of *redis.Client the cache needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type RecommendationCache struct {
	client kv
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return newRecommendationCache(client, ttl)
}

func newRecommendationCache(client kv, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

func hybridKey(userID int) string {
	return fmt.Sprintf("reco:hybrid:user:%d", userID)
}

func popularKey(n int) string {
	return fmt.Sprintf("reco:popular:%d", n)
}

func (r *RecommendationCache) GetHybrid(ctx context.Context, userID int) ([]string, bool, error) {
	var names []string
	ok, err := r.get(ctx, hybridKey(userID), &names)
	return names, ok, err
}

func (r *RecommendationCache) SetHybrid(ctx context.Context, userID int, names []string) error {
	return r.set(ctx, hybridKey(userID), names)
}

func (r *RecommendationCache) GetPopular(ctx context.Context, n int) ([]domain.PopularAnime, bool, error) {
	var recs []domain.PopularAnime
	ok, err := r.get(ctx, popularKey(n), &recs)
	return recs, ok, err
}

func (r *RecommendationCache) SetPopular(ctx context.Context, n int, recs []domain.PopularAnime) error {
	return r.set(ctx, popularKey(n), recs)
}

func (r *RecommendationCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s from Redis: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return true, nil
}

func (r *RecommendationCache) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s in Redis: %w", key, err)
	}

	return nil
}
