package domain

import "strings"

const UnknownValue = "Unknown"

type Anime struct {
	AnimeID  int      `json:"anime_id"`
	Name     string   `json:"name"`
	Genres   []string `json:"genres"`
	Episodes int      `json:"episodes"`
	Type     string   `json:"type"`
	Score    float64  `json:"score"`
}

// UnknownAnime is the placeholder used when a metadata row is missing.
func UnknownAnime(animeID int) Anime {
	return Anime{
		AnimeID: animeID,
		Name:    UnknownValue,
		Type:    UnknownValue,
	}
}

// GenreList joins genres the way the source CSV stores them.
func (a Anime) GenreList() string {
	if len(a.Genres) == 0 {
		return UnknownValue
	}
	return strings.Join(a.Genres, ", ")
}

type Rating struct {
	UserID  int     `json:"user_id"`
	AnimeID int     `json:"anime_id"`
	Rating  float64 `json:"rating"`
}

type AnimeRatingStats struct {
	AnimeID    int     `gorm:"column:anime_id" json:"anime_id"`
	AvgRating  float64 `gorm:"column:avg_rating" json:"avg_rating"`
	NumRatings int     `gorm:"column:num_ratings" json:"num_ratings"`
}
