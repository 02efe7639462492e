package recommendation

import (
	"animeRecommender/domain"
	"animeRecommender/pkg/logger"
	"animeRecommender/pkg/metrics"
	"context"
)

type Weights struct {
	User    float64
	Content float64
}

func (s *Service) DefaultWeights() Weights {
	return Weights{User: s.cfg.UserWeight, Content: s.cfg.ContentWeight}
}

// Hybrid runs the hybrid pipeline with the configured weights, consulting
// the cache when one is set.
//
// The returned slice is never nil. When the user stage fails it is empty and
// err says why; callers that only render names can ignore err.
func (s *Service) Hybrid(ctx context.Context, userID int) ([]string, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetHybrid(ctx, userID)
		switch {
		case err != nil:
			logger.Warn("Hybrid cache lookup failed", "user_id", userID, "error", err.Error())
		case ok:
			metrics.CacheLookups.WithLabelValues("hybrid", "hit").Inc()
			return cached, nil
		default:
			metrics.CacheLookups.WithLabelValues("hybrid", "miss").Inc()
		}
	}

	recs, err := s.HybridWithWeights(ctx, userID, s.DefaultWeights())
	if err != nil || len(recs) == 0 || s.cache == nil {
		return recs, err
	}

	if err := s.cache.SetHybrid(ctx, userID, recs); err != nil {
		logger.Warn("Hybrid cache store failed", "user_id", userID, "error", err.Error())
	}
	return recs, nil
}

// HybridWithWeights fuses user-based and content-based candidates for userID.
// A user-stage failure yields an empty list; content-stage misses are skipped.
func (s *Service) HybridWithWeights(ctx context.Context, userID int, w Weights) ([]string, error) {
	user, err := s.userStage(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			logger.Warn("Hybrid recommendation for unknown user", "user_id", userID, "stage", "user")
		} else {
			logger.Error("Hybrid recommendation failed", err, "user_id", userID, "stage", "user")
			metrics.HybridFailures.WithLabelValues("user").Inc()
		}
		return []string{}, err
	}

	content := s.contentStage(ctx, user.Candidates)
	if len(content.Skipped) > 0 {
		logger.Info("Content candidates partially skipped",
			"user_id", userID,
			"skipped", len(content.Skipped),
			"resolved", len(user.Candidates)-len(content.Skipped),
		)
	}

	fused := Fuse(user.Candidates, content.Candidates, w.User, w.Content, s.cfg.TopN)
	logger.Debug("Hybrid recommendation built",
		"user_id", userID,
		"similar_users", len(user.SimilarUsers),
		"user_candidates", len(user.Candidates),
		"content_candidates", len(content.Candidates),
		"results", len(fused),
	)

	return names(fused), nil
}
