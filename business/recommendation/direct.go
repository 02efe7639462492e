package recommendation

import (
	"animeRecommender/domain"
	"context"
	"fmt"
)

// RecommendForUser scores every anime against the user's embedding and
// returns the n best with metadata.
func (s *Service) RecommendForUser(ctx context.Context, userID, n int) ([]domain.UserRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	idx, ok := s.bundle.UserMapping().Index(userID)
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityUser, userID)
	}

	ranked, err := rankByDot(s.bundle.UserEmbeddings().Row(idx), s.bundle.AnimeEmbeddings(), noExclusion)
	if err != nil {
		return nil, fmt.Errorf("score anime for user %d: %w", userID, err)
	}

	anime := s.bundle.AnimeMapping()
	ranked = topK(ranked, s.limit(n))
	out := make([]domain.UserRecommendation, 0, len(ranked))
	for _, r := range ranked {
		id, _ := anime.ID(r.Index)
		out = append(out, domain.UserRecommendation{
			AnimeDetails:        s.details(id),
			RecommendationScore: r.Score,
		})
	}

	return out, nil
}
