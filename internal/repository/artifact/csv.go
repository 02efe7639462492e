package artifact

import (
	"animeRecommender/domain"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

const (
	colAnimeID  = "anime_id"
	colName     = "eng_version"
	colGenres   = "Genres"
	colEpisodes = "Episodes"
	colType     = "Type"
	colScore    = "Score"
	colUserID   = "user_id"
	colRating   = "rating"
)

type ratingTotals struct {
	sum   float64
	count int
}

type ratingsTable struct {
	byUser map[int][]domain.Rating
	totals map[int]*ratingTotals
}

func headerIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return idx, nil
}

func cell(record []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseNumber treats blank, "Unknown" and NaN cells as zero.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}

func parseGenres(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadAnime(ctx context.Context, path string) ([]domain.Anime, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx, err := headerIndex(header, colAnimeID, colName)
	if err != nil {
		return nil, err
	}

	var rows []domain.Anime
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		id, err := strconv.Atoi(cell(record, idx, colAnimeID))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid anime_id: %w", line, err)
		}

		name := cell(record, idx, colName)
		if name == "" {
			name = domain.UnknownValue
		}
		typ := cell(record, idx, colType)
		if typ == "" {
			typ = domain.UnknownValue
		}

		rows = append(rows, domain.Anime{
			AnimeID:  id,
			Name:     name,
			Genres:   parseGenres(cell(record, idx, colGenres)),
			Episodes: int(parseNumber(cell(record, idx, colEpisodes))),
			Type:     typ,
			Score:    parseNumber(cell(record, idx, colScore)),
		})
	}

	return rows, nil
}

func loadRatings(ctx context.Context, path string) (*ratingsTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx, err := headerIndex(header, colUserID, colAnimeID, colRating)
	if err != nil {
		return nil, err
	}

	table := &ratingsTable{
		byUser: make(map[int][]domain.Rating),
		totals: make(map[int]*ratingTotals),
	}
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		userID, err := strconv.Atoi(cell(record, idx, colUserID))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid user_id: %w", line, err)
		}
		animeID, err := strconv.Atoi(cell(record, idx, colAnimeID))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid anime_id: %w", line, err)
		}
		value, err := strconv.ParseFloat(cell(record, idx, colRating), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rating: %w", line, err)
		}

		table.byUser[userID] = append(table.byUser[userID], domain.Rating{
			UserID:  userID,
			AnimeID: animeID,
			Rating:  value,
		})

		t, ok := table.totals[animeID]
		if !ok {
			t = &ratingTotals{}
			table.totals[animeID] = t
		}
		t.sum += value
		t.count++
	}

	return table, nil
}

// LoadRatings reads a ratings CSV into a flat slice ordered by user id.
func LoadRatings(ctx context.Context, path string) ([]domain.Rating, error) {
	table, err := loadRatings(ctx, path)
	if err != nil {
		return nil, &domain.ArtifactError{Artifact: "rating_df", Err: err}
	}

	users := make([]int, 0, len(table.byUser))
	total := 0
	for id, rs := range table.byUser {
		users = append(users, id)
		total += len(rs)
	}
	sort.Ints(users)

	out := make([]domain.Rating, 0, total)
	for _, id := range users {
		out = append(out, table.byUser[id]...)
	}
	return out, nil
}
