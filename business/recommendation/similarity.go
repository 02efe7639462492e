package recommendation

import (
	"animeRecommender/domain"
	"fmt"
	"sort"
)

const noExclusion = -1

// rankByDot scores every row of m against query and returns the rows in
// descending score order. Equal scores keep index order. The row at
// exclude, if any, is dropped from the ranking.
func rankByDot(query []float32, m *domain.Matrix, exclude int) ([]domain.ScoredIndex, error) {
	if len(query) != m.Cols() {
		return nil, fmt.Errorf("query has %d dimensions, matrix has %d: %w", len(query), m.Cols(), domain.ErrDimensionMismatch)
	}

	ranked := make([]domain.ScoredIndex, 0, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		if i == exclude {
			continue
		}
		ranked = append(ranked, domain.ScoredIndex{Index: i, Score: dot(query, m.Row(i))})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, nil
}

func dot(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func topK(ranked []domain.ScoredIndex, k int) []domain.ScoredIndex {
	if k >= 0 && len(ranked) > k {
		return ranked[:k]
	}
	return ranked
}
