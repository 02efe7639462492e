package recommendation

import (
	"animeRecommender/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeBundle struct {
	users    *domain.IDMapping
	anime    *domain.IDMapping
	userEmb  *domain.Matrix
	animeEmb *domain.Matrix
	meta     map[int]domain.Anime
	names    map[string]int
	ratings  map[int][]domain.Rating
}

func (f *fakeBundle) UserMapping() *domain.IDMapping  { return f.users }
func (f *fakeBundle) AnimeMapping() *domain.IDMapping { return f.anime }
func (f *fakeBundle) UserEmbeddings() *domain.Matrix  { return f.userEmb }
func (f *fakeBundle) AnimeEmbeddings() *domain.Matrix { return f.animeEmb }

func (f *fakeBundle) AnimeMetadata(animeID int) (domain.Anime, bool) {
	a, ok := f.meta[animeID]
	return a, ok
}

func (f *fakeBundle) AnimeIDByName(name string) (int, bool) {
	id, ok := f.names[name]
	return id, ok
}

func (f *fakeBundle) UserRatings(userID int) []domain.Rating {
	return f.ratings[userID]
}

func mapping(t *testing.T, ids ...int) *domain.IDMapping {
	t.Helper()
	enc := make(map[int]int, len(ids))
	dec := make(map[int]int, len(ids))
	for i, id := range ids {
		enc[id] = i
		dec[i] = id
	}
	m, err := domain.NewIDMapping(enc, dec)
	require.NoError(t, err)
	return m
}

func matrix(t *testing.T, rows ...[]float32) *domain.Matrix {
	t.Helper()
	m, err := domain.NewMatrix(rows)
	require.NoError(t, err)
	return m
}

// newFakeBundle builds a small world:
//
//	users 10, 20, 30 point roughly the same way, 40 the opposite way.
//	anime 1..5 are named A..E.
//	user 20 likes A and B, user 30 likes B and D, user 10 has only seen A.
func newFakeBundle(t *testing.T) *fakeBundle {
	t.Helper()
	b := &fakeBundle{
		users: mapping(t, 10, 20, 30, 40),
		anime: mapping(t, 1, 2, 3, 4, 5),
		userEmb: matrix(t,
			[]float32{1, 0},
			[]float32{0.9, 0.1},
			[]float32{0.8, 0.2},
			[]float32{-1, 0},
		),
		animeEmb: matrix(t,
			[]float32{1, 0},
			[]float32{0.9, 0.1},
			[]float32{0, 1},
			[]float32{0.1, 0.9},
			[]float32{0.5, 0.5},
		),
		meta:  map[int]domain.Anime{},
		names: map[string]int{},
		ratings: map[int][]domain.Rating{
			10: {{UserID: 10, AnimeID: 1, Rating: 8}},
			20: {
				{UserID: 20, AnimeID: 1, Rating: 10},
				{UserID: 20, AnimeID: 2, Rating: 9},
				{UserID: 20, AnimeID: 3, Rating: 2},
			},
			30: {
				{UserID: 30, AnimeID: 2, Rating: 9},
				{UserID: 30, AnimeID: 4, Rating: 8},
				{UserID: 30, AnimeID: 5, Rating: 1},
			},
			40: {
				{UserID: 40, AnimeID: 3, Rating: 10},
				{UserID: 40, AnimeID: 5, Rating: 1},
			},
		},
	}
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		id := i + 1
		b.meta[id] = domain.Anime{
			AnimeID:  id,
			Name:     name,
			Genres:   []string{"Action"},
			Episodes: 12,
			Type:     "TV",
			Score:    float64(7 + i),
		}
		b.names[name] = id
	}
	return b
}

type fakeStats struct {
	rows []domain.AnimeRatingStats
	err  error
	min  int
}

func (f *fakeStats) TopRated(_ context.Context, minRatings, limit int) ([]domain.AnimeRatingStats, error) {
	f.min = minRatings
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

type fakeCache struct {
	hybrid     map[int][]string
	popular    map[int][]domain.PopularAnime
	err        error
	hybridSets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		hybrid:  map[int][]string{},
		popular: map[int][]domain.PopularAnime{},
	}
}

func (c *fakeCache) GetHybrid(_ context.Context, userID int) ([]string, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.hybrid[userID]
	return v, ok, nil
}

func (c *fakeCache) SetHybrid(_ context.Context, userID int, names []string) error {
	c.hybridSets++
	c.hybrid[userID] = names
	return nil
}

func (c *fakeCache) GetPopular(_ context.Context, n int) ([]domain.PopularAnime, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.popular[n]
	return v, ok, nil
}

func (c *fakeCache) SetPopular(_ context.Context, n int, recs []domain.PopularAnime) error {
	c.popular[n] = recs
	return nil
}

var errCacheDown = errors.New("cache down")

func newTestService(t *testing.T, cfg Config) (*Service, *fakeBundle) {
	t.Helper()
	b := newFakeBundle(t)
	return NewService(b, &fakeStats{}, nil, cfg), b
}
