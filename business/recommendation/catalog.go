package recommendation

import (
	"animeRecommender/domain"
	"context"
	"fmt"
)

// ValidUsers returns up to limit encoded user ids and the total count.
func (s *Service) ValidUsers(ctx context.Context, limit int) ([]int, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	users := s.bundle.UserMapping()
	return users.IDs(limit), users.Len(), nil
}

// ValidAnime returns up to limit encoded anime with their name and score.
func (s *Service) ValidAnime(ctx context.Context, limit int) ([]domain.AnimeSummary, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	anime := s.bundle.AnimeMapping()
	ids := anime.IDs(limit)
	out := make([]domain.AnimeSummary, 0, len(ids))
	for _, id := range ids {
		d := s.details(id)
		out = append(out, domain.AnimeSummary{AnimeID: id, Name: d.Name, Score: d.Score})
	}

	return out, anime.Len(), nil
}

func (s *Service) Health() domain.Health {
	if s.bundle == nil {
		return domain.Health{}
	}
	return domain.Health{
		ModelLoaded: s.bundle.UserEmbeddings() != nil && s.bundle.AnimeEmbeddings() != nil,
		DataLoaded:  s.stats != nil,
		NumUsers:    s.bundle.UserMapping().Len(),
		NumAnime:    s.bundle.AnimeMapping().Len(),
	}
}
