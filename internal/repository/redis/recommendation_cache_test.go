package redis

import (
	"animeRecommender/domain"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRecommendationCache_Hybrid(t *testing.T) {
	kv := newFakeKV()
	cache := newRecommendationCache(kv, 5*time.Minute)
	ctx := context.Background()

	_, ok, err := cache.GetHybrid(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetHybrid(ctx, 7, []string{"Cowboy Bebop", "Trigun"}))
	assert.Contains(t, kv.data, "reco:hybrid:user:7")
	assert.Equal(t, 5*time.Minute, kv.ttls["reco:hybrid:user:7"])

	names, ok, err := cache.GetHybrid(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Cowboy Bebop", "Trigun"}, names)
}

func TestRecommendationCache_Popular(t *testing.T) {
	kv := newFakeKV()
	cache := newRecommendationCache(kv, time.Minute)
	ctx := context.Background()

	recs := []domain.PopularAnime{{
		AnimeDetails: domain.AnimeDetails{AnimeID: 1, Name: "A", Genres: "Action", Type: "TV"},
		AvgRating:    9.1,
		NumRatings:   150,
	}}
	require.NoError(t, cache.SetPopular(ctx, 10, recs))
	assert.Contains(t, kv.data, "reco:popular:10")

	got, ok, err := cache.GetPopular(ctx, 10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, recs, got)
}

func TestRecommendationCache_Errors(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("connection refused")
	cache := newRecommendationCache(kv, time.Minute)

	_, ok, err := cache.GetHybrid(context.Background(), 1)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "connection refused")

	kv.getErr = nil
	kv.data[hybridKey(2)] = "{not json"
	_, ok, err = cache.GetHybrid(context.Background(), 2)
	assert.False(t, ok)
	assert.Error(t, err)
}
