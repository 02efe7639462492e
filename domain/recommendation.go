package domain

// AnimeDetails is the metadata block shared by every JSON recommendation.
type AnimeDetails struct {
	AnimeID  int     `json:"anime_id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Genres   string  `json:"genres"`
	Episodes int     `json:"episodes"`
	Type     string  `json:"type"`
}

func NewAnimeDetails(a Anime) AnimeDetails {
	return AnimeDetails{
		AnimeID:  a.AnimeID,
		Name:     a.Name,
		Score:    a.Score,
		Genres:   a.GenreList(),
		Episodes: a.Episodes,
		Type:     a.Type,
	}
}

type UserRecommendation struct {
	AnimeDetails
	RecommendationScore float64 `json:"recommendation_score"`
}

type SimilarAnime struct {
	AnimeDetails
	Similarity float64 `json:"similarity"`
}

type PopularAnime struct {
	AnimeDetails
	AvgRating  float64 `json:"avg_rating"`
	NumRatings int     `json:"num_ratings"`
}

type AnimeSummary struct {
	AnimeID int     `json:"anime_id"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
}

// ScoredIndex is one row of a similarity ranking.
type ScoredIndex struct {
	Index int
	Score float64
}

// Health reports what the serving process has loaded.
type Health struct {
	ModelLoaded bool
	DataLoaded  bool
	NumUsers    int
	NumAnime    int
}
