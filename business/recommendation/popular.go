package recommendation

import (
	"animeRecommender/domain"
	"animeRecommender/pkg/logger"
	"animeRecommender/pkg/metrics"
	"context"
	"fmt"
)

// PopularAnime returns the n highest rated anime among those with at least
// MinPopularRatings ratings.
func (s *Service) PopularAnime(ctx context.Context, n int) ([]domain.PopularAnime, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	n = s.limit(n)

	if s.cache != nil {
		cached, ok, err := s.cache.GetPopular(ctx, n)
		switch {
		case err != nil:
			logger.Warn("Popular cache lookup failed", "n", n, "error", err.Error())
		case ok:
			metrics.CacheLookups.WithLabelValues("popular", "hit").Inc()
			return cached, nil
		default:
			metrics.CacheLookups.WithLabelValues("popular", "miss").Inc()
		}
	}

	stats, err := s.stats.TopRated(ctx, MinPopularRatings, n)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	out := make([]domain.PopularAnime, 0, len(stats))
	for _, st := range stats {
		if st.NumRatings < MinPopularRatings {
			continue
		}
		out = append(out, domain.PopularAnime{
			AnimeDetails: s.details(st.AnimeID),
			AvgRating:    st.AvgRating,
			NumRatings:   st.NumRatings,
		})
	}

	if s.cache != nil && len(out) > 0 {
		if err := s.cache.SetPopular(ctx, n, out); err != nil {
			logger.Warn("Popular cache store failed", "n", n, "error", err.Error())
		}
	}

	return out, nil
}
