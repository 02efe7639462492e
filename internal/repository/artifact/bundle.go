// Package artifact loads the precomputed recommendation tables into an
// immutable Bundle. A Bundle is built once at startup and shared read-only
// by every request.
package artifact

import (
	"animeRecommender/domain"
	"animeRecommender/pkg/config"
	"animeRecommender/pkg/logger"
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Bundle holds the id mappings, embeddings, anime metadata and ratings.
type Bundle struct {
	users           *domain.IDMapping
	anime           *domain.IDMapping
	userEmbeddings  *domain.Matrix
	animeEmbeddings *domain.Matrix
	catalog         map[int]domain.Anime
	names           map[string]int
	ratings         *ratingsTable
}

// Load reads every table concurrently. Any failure aborts the load.
func Load(ctx context.Context, cfg config.ArtifactConfig) (*Bundle, error) {
	var (
		userEnc, userDec, animeEnc, animeDec map[int]int
		userRows, animeRows                  [][]float32
		catalog                              []domain.Anime
		ratings                              *ratingsTable
	)

	eg, egCtx := errgroup.WithContext(ctx)
	mapping := func(name, path string, dst *map[int]int) {
		eg.Go(func() error {
			m, err := loadMapping(egCtx, path)
			if err != nil {
				return &domain.ArtifactError{Artifact: name, Err: err}
			}
			*dst = m
			return nil
		})
	}
	weights := func(name, path string, dst *[][]float32) {
		eg.Go(func() error {
			w, err := loadWeights(egCtx, path)
			if err != nil {
				return &domain.ArtifactError{Artifact: name, Err: err}
			}
			*dst = w
			return nil
		})
	}

	mapping("user2user_encoded", cfg.UserEncoded, &userEnc)
	mapping("user2user_decoded", cfg.UserDecoded, &userDec)
	mapping("anime2anime_encoded", cfg.AnimeEncoded, &animeEnc)
	mapping("anime2anime_decoded", cfg.AnimeDecoded, &animeDec)
	weights("user_weights", cfg.UserWeights, &userRows)
	weights("anime_weights", cfg.AnimeWeights, &animeRows)
	eg.Go(func() error {
		rows, err := loadAnime(egCtx, cfg.AnimeMetadata)
		if err != nil {
			return &domain.ArtifactError{Artifact: "anime_df", Err: err}
		}
		catalog = rows
		return nil
	})
	eg.Go(func() error {
		t, err := loadRatings(egCtx, cfg.Ratings)
		if err != nil {
			return &domain.ArtifactError{Artifact: "rating_df", Err: err}
		}
		ratings = t
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	b, err := newBundle(userEnc, userDec, animeEnc, animeDec, userRows, animeRows, catalog, ratings)
	if err != nil {
		return nil, err
	}

	logger.Info("Artifacts loaded",
		"num_users", b.users.Len(),
		"num_anime", b.anime.Len(),
		"num_metadata_rows", len(b.catalog),
		"embedding_dim", b.animeEmbeddings.Cols(),
	)

	return b, nil
}

func newBundle(
	userEnc, userDec, animeEnc, animeDec map[int]int,
	userRows, animeRows [][]float32,
	catalog []domain.Anime,
	ratings *ratingsTable,
) (*Bundle, error) {
	users, err := domain.NewIDMapping(userEnc, userDec)
	if err != nil {
		return nil, &domain.ArtifactError{Artifact: "user mappings", Err: err}
	}
	anime, err := domain.NewIDMapping(animeEnc, animeDec)
	if err != nil {
		return nil, &domain.ArtifactError{Artifact: "anime mappings", Err: err}
	}

	userEmb, err := domain.NewMatrix(userRows)
	if err != nil {
		return nil, &domain.ArtifactError{Artifact: "user_weights", Err: err}
	}
	animeEmb, err := domain.NewMatrix(animeRows)
	if err != nil {
		return nil, &domain.ArtifactError{Artifact: "anime_weights", Err: err}
	}

	if userEmb.Rows() != users.Len() {
		return nil, &domain.ArtifactError{
			Artifact: "user_weights",
			Err:      fmt.Errorf("%d rows for %d encoded users", userEmb.Rows(), users.Len()),
		}
	}
	if animeEmb.Rows() != anime.Len() {
		return nil, &domain.ArtifactError{
			Artifact: "anime_weights",
			Err:      fmt.Errorf("%d rows for %d encoded anime", animeEmb.Rows(), anime.Len()),
		}
	}

	if userEmb.Rows() > 0 && animeEmb.Rows() > 0 && userEmb.Cols() != animeEmb.Cols() {
		return nil, &domain.ArtifactError{
			Artifact: "anime_weights",
			Err:      fmt.Errorf("%d columns, user_weights has %d: %w", animeEmb.Cols(), userEmb.Cols(), domain.ErrDimensionMismatch),
		}
	}

	b := &Bundle{
		users:           users,
		anime:           anime,
		userEmbeddings:  userEmb,
		animeEmbeddings: animeEmb,
		catalog:         make(map[int]domain.Anime, len(catalog)),
		names:           make(map[string]int, len(catalog)),
		ratings:         ratings,
	}
	for _, a := range catalog {
		if _, dup := b.catalog[a.AnimeID]; dup {
			continue
		}
		b.catalog[a.AnimeID] = a
		if _, dup := b.names[a.Name]; !dup && a.Name != domain.UnknownValue {
			b.names[a.Name] = a.AnimeID
		}
	}

	return b, nil
}

// NewBundle assembles a Bundle from in-memory tables, applying the same
// validation as Load.
func NewBundle(
	users, anime map[int]int,
	userRows, animeRows [][]float32,
	catalog []domain.Anime,
	ratings []domain.Rating,
) (*Bundle, error) {
	if users == nil || anime == nil {
		return nil, errors.New("mappings are required")
	}
	table := &ratingsTable{
		byUser: make(map[int][]domain.Rating),
		totals: make(map[int]*ratingTotals),
	}
	for _, r := range ratings {
		table.byUser[r.UserID] = append(table.byUser[r.UserID], r)
		t, ok := table.totals[r.AnimeID]
		if !ok {
			t = &ratingTotals{}
			table.totals[r.AnimeID] = t
		}
		t.sum += r.Rating
		t.count++
	}
	return newBundle(users, invert(users), anime, invert(anime), userRows, animeRows, catalog, table)
}

func invert(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func (b *Bundle) UserMapping() *domain.IDMapping  { return b.users }
func (b *Bundle) AnimeMapping() *domain.IDMapping { return b.anime }
func (b *Bundle) UserEmbeddings() *domain.Matrix  { return b.userEmbeddings }
func (b *Bundle) AnimeEmbeddings() *domain.Matrix { return b.animeEmbeddings }

func (b *Bundle) AnimeMetadata(animeID int) (domain.Anime, bool) {
	a, ok := b.catalog[animeID]
	return a, ok
}

// AnimeIDByName resolves an English title to the first anime carrying it.
func (b *Bundle) AnimeIDByName(name string) (int, bool) {
	id, ok := b.names[name]
	return id, ok
}

func (b *Bundle) UserRatings(userID int) []domain.Rating {
	return b.ratings.byUser[userID]
}

// TopRated aggregates ratings per anime, keeps anime with at least
// minRatings ratings and orders them by mean rating, then anime id.
func (b *Bundle) TopRated(ctx context.Context, minRatings, limit int) ([]domain.AnimeRatingStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	stats := make([]domain.AnimeRatingStats, 0, len(b.ratings.totals))
	for animeID, t := range b.ratings.totals {
		if t.count < minRatings {
			continue
		}
		stats = append(stats, domain.AnimeRatingStats{
			AnimeID:    animeID,
			AvgRating:  t.sum / float64(t.count),
			NumRatings: t.count,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AvgRating != stats[j].AvgRating {
			return stats[i].AvgRating > stats[j].AvgRating
		}
		return stats[i].AnimeID < stats[j].AnimeID
	})

	if limit >= 0 && len(stats) > limit {
		stats = stats[:limit]
	}

	return stats, nil
}
