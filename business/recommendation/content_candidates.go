package recommendation

import (
	"animeRecommender/domain"
	"animeRecommender/pkg/logger"
	"animeRecommender/pkg/metrics"
	"context"
	"errors"
	"fmt"
)

var errUnknownTitle = errors.New("title not in anime metadata")

type SkippedTitle struct {
	Name   string
	Reason error
}

// ContentStageResult collects neighbours for every title that could be
// resolved. Titles that could not are listed in Skipped; they never fail
// the pipeline.
type ContentStageResult struct {
	Candidates []string
	Skipped    []SkippedTitle
}

// SimilarAnime ranks every anime against animeID by embedding dot product,
// excluding animeID itself, and returns the closest n with metadata.
func (s *Service) SimilarAnime(ctx context.Context, animeID, n int) ([]domain.SimilarAnime, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ranked, err := s.similarAnime(animeID, s.limit(n))
	if err != nil {
		return nil, err
	}

	anime := s.bundle.AnimeMapping()
	out := make([]domain.SimilarAnime, 0, len(ranked))
	for _, r := range ranked {
		id, _ := anime.ID(r.Index)
		out = append(out, domain.SimilarAnime{
			AnimeDetails: s.details(id),
			Similarity:   r.Score,
		})
	}

	return out, nil
}

func (s *Service) similarAnime(animeID, n int) ([]domain.ScoredIndex, error) {
	idx, ok := s.bundle.AnimeMapping().Index(animeID)
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityAnime, animeID)
	}

	emb := s.bundle.AnimeEmbeddings()
	ranked, err := rankByDot(emb.Row(idx), emb, idx)
	if err != nil {
		return nil, fmt.Errorf("rank similar anime: %w", err)
	}

	return topK(ranked, n), nil
}

// similarTitles resolves name to an anime and returns the names of its
// nearest neighbours. Neighbours without metadata are left out.
func (s *Service) similarTitles(name string) ([]string, error) {
	animeID, ok := s.bundle.AnimeIDByName(name)
	if !ok {
		return nil, errUnknownTitle
	}

	ranked, err := s.similarAnime(animeID, s.cfg.ContentNeighbors)
	if err != nil {
		return nil, err
	}

	anime := s.bundle.AnimeMapping()
	names := make([]string, 0, len(ranked))
	for _, r := range ranked {
		id, ok := anime.ID(r.Index)
		if !ok {
			continue
		}
		a, ok := s.bundle.AnimeMetadata(id)
		if !ok || a.Name == domain.UnknownValue {
			continue
		}
		names = append(names, a.Name)
	}

	return names, nil
}

func (s *Service) contentStage(ctx context.Context, titles []string) ContentStageResult {
	var res ContentStageResult
	skip := func(title string, err error) {
		logger.Warn("Skipping content candidates", "anime", title, "stage", "content", "error", err.Error())
		metrics.ContentSkips.Inc()
		res.Skipped = append(res.Skipped, SkippedTitle{Name: title, Reason: err})
	}

	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			skip(title, err)
			continue
		}

		names, err := s.similarTitles(title)
		if err != nil {
			skip(title, err)
			continue
		}
		if len(names) == 0 {
			logger.Debug("No similar anime found", "anime", title)
		}
		res.Candidates = append(res.Candidates, names...)
	}

	return res
}
