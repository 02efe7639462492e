package recommendation

import (
	"animeRecommender/domain"
	"context"
	"fmt"
	"sort"
)

type SimilarUser struct {
	UserID     int
	Similarity float64
}

// UserStageResult is the outcome of the user-based stage. Any error from
// this stage is fatal to the hybrid pipeline.
type UserStageResult struct {
	SimilarUsers []SimilarUser
	Candidates   []string
}

// SimilarUsers ranks every user against userID by embedding dot product and
// returns the closest n, never including userID itself.
func (s *Service) SimilarUsers(ctx context.Context, userID, n int) ([]SimilarUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	users := s.bundle.UserMapping()
	idx, ok := users.Index(userID)
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityUser, userID)
	}

	emb := s.bundle.UserEmbeddings()
	ranked, err := rankByDot(emb.Row(idx), emb, idx)
	if err != nil {
		return nil, fmt.Errorf("rank similar users: %w", err)
	}

	ranked = topK(ranked, n)
	out := make([]SimilarUser, 0, len(ranked))
	for _, r := range ranked {
		id, ok := users.ID(r.Index)
		if !ok {
			return nil, fmt.Errorf("user index %d has no decoded id", r.Index)
		}
		out = append(out, SimilarUser{UserID: id, Similarity: r.Score})
	}

	return out, nil
}

// userStage finds similar users and collects the titles they rated above
// their own mean that userID has not rated. Titles are ranked by how many
// similar users picked them; ties keep first-seen order.
func (s *Service) userStage(ctx context.Context, userID int) (UserStageResult, error) {
	similar, err := s.SimilarUsers(ctx, userID, s.cfg.SimilarUsers)
	if err != nil {
		return UserStageResult{}, err
	}

	seen := make(map[int]struct{})
	for _, r := range s.bundle.UserRatings(userID) {
		seen[r.AnimeID] = struct{}{}
	}

	votes := make(map[string]int)
	var order []string
	for _, su := range similar {
		picked := make(map[string]struct{})
		for _, animeID := range aboveAverage(s.bundle.UserRatings(su.UserID)) {
			if _, ok := seen[animeID]; ok {
				continue
			}
			a, ok := s.bundle.AnimeMetadata(animeID)
			if !ok || a.Name == domain.UnknownValue {
				continue
			}
			if _, dup := picked[a.Name]; dup {
				continue
			}
			picked[a.Name] = struct{}{}
			if _, ok := votes[a.Name]; !ok {
				order = append(order, a.Name)
			}
			votes[a.Name]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return votes[order[i]] > votes[order[j]]
	})
	if len(order) > s.cfg.Candidates {
		order = order[:s.cfg.Candidates]
	}

	return UserStageResult{SimilarUsers: similar, Candidates: order}, nil
}

// aboveAverage returns the anime a user rated strictly above their mean rating.
func aboveAverage(ratings []domain.Rating) []int {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r.Rating
	}
	mean := sum / float64(len(ratings))

	out := make([]int, 0, len(ratings)/2)
	for _, r := range ratings {
		if r.Rating > mean {
			out = append(out, r.AnimeID)
		}
	}
	return out
}
