// Package recommendation implements the anime recommendation pipelines
// served by both front ends: direct user and item similarity lookups,
// the popularity fallback, and the hybrid pipeline that fuses user-based
// and content-based candidates.
//
// The user-based stage counts how many similar users picked each title and
// ranks candidates by that raw vote count. It does not weight votes by the
// similar user's similarity score.
package recommendation

import (
	"animeRecommender/domain"
	"context"
)

// MinPopularRatings is the floor below which an anime is never listed as popular.
const MinPopularRatings = 100

// ModelBundle is the read-only artifact set the pipelines run on.
type ModelBundle interface {
	UserMapping() *domain.IDMapping
	AnimeMapping() *domain.IDMapping
	UserEmbeddings() *domain.Matrix
	AnimeEmbeddings() *domain.Matrix
	AnimeMetadata(animeID int) (domain.Anime, bool)
	AnimeIDByName(name string) (int, bool)
	UserRatings(userID int) []domain.Rating
}

type RatingStatsRepository interface {
	TopRated(ctx context.Context, minRatings, limit int) ([]domain.AnimeRatingStats, error)
}

// Cache stores finished results. Implementations may be nil-safe no-ops.
type Cache interface {
	GetHybrid(ctx context.Context, userID int) ([]string, bool, error)
	SetHybrid(ctx context.Context, userID int, names []string) error
	GetPopular(ctx context.Context, n int) ([]domain.PopularAnime, bool, error)
	SetPopular(ctx context.Context, n int, recs []domain.PopularAnime) error
}

type Config struct {
	UserWeight       float64
	ContentWeight    float64
	SimilarUsers     int
	Candidates       int
	ContentNeighbors int
	TopN             int
}

const (
	defaultWeight           = 0.5
	defaultSimilarUsers     = 10
	defaultCandidates       = 10
	defaultContentNeighbors = 10
	defaultTopN             = 10
)

func DefaultConfig() Config {
	return Config{
		UserWeight:       defaultWeight,
		ContentWeight:    defaultWeight,
		SimilarUsers:     defaultSimilarUsers,
		Candidates:       defaultCandidates,
		ContentNeighbors: defaultContentNeighbors,
		TopN:             defaultTopN,
	}
}

type Service struct {
	bundle ModelBundle
	stats  RatingStatsRepository
	cache  Cache
	cfg    Config
}

// NewService wires the pipelines. cache may be nil.
func NewService(bundle ModelBundle, stats RatingStatsRepository, cache Cache, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.SimilarUsers <= 0 {
		cfg.SimilarUsers = def.SimilarUsers
	}
	if cfg.Candidates <= 0 {
		cfg.Candidates = def.Candidates
	}
	if cfg.ContentNeighbors <= 0 {
		cfg.ContentNeighbors = def.ContentNeighbors
	}
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}

	return &Service{
		bundle: bundle,
		stats:  stats,
		cache:  cache,
		cfg:    cfg,
	}
}

// details joins metadata for animeID, degrading to "Unknown" when absent.
func (s *Service) details(animeID int) domain.AnimeDetails {
	a, ok := s.bundle.AnimeMetadata(animeID)
	if !ok {
		a = domain.UnknownAnime(animeID)
	}
	return domain.NewAnimeDetails(a)
}

func (s *Service) limit(n int) int {
	if n <= 0 {
		return s.cfg.TopN
	}
	return n
}
