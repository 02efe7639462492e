package postgres

import (
	"animeRecommender/domain"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// RatingRecord is one row of the ratings table.
type RatingRecord struct {
	UserID  int     `gorm:"column:user_id;index"`
	AnimeID int     `gorm:"column:anime_id;index"`
	Rating  float64 `gorm:"column:rating"`
}

func (RatingRecord) TableName() string {
	return "ratings"
}

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{
		DB: db,
	}
}

// TopRated aggregates ratings per anime and returns the best averages among
// anime with at least minRatings ratings, ties broken by anime id.
func (r *RatingRepository) TopRated(ctx context.Context, minRatings, limit int) ([]domain.AnimeRatingStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var stats []domain.AnimeRatingStats
	err := r.DB.WithContext(ctx).
		Model(&RatingRecord{}).
		Select("anime_id, AVG(rating) AS avg_rating, COUNT(rating) AS num_ratings").
		Group("anime_id").
		Having("COUNT(rating) >= ?", minRatings).
		Order("avg_rating DESC, anime_id ASC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	return stats, nil
}

// Import creates the ratings table if needed and inserts ratings in batches.
func (r *RatingRepository) Import(ctx context.Context, ratings []domain.Rating, batchSize int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).AutoMigrate(&RatingRecord{}); err != nil {
		return fmt.Errorf("failed to migrate ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil
	}

	records := make([]RatingRecord, 0, len(ratings))
	for _, rt := range ratings {
		records = append(records, RatingRecord{UserID: rt.UserID, AnimeID: rt.AnimeID, Rating: rt.Rating})
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(records, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert ratings: %w", err)
	}

	return nil
}
