package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

const reviewColumns = `id, review_id, restaurant_id, user_id, rating, comment, is_active, created_at, updated_at`

func (r *PostgresRepository) GetReviewByExternalID(ctx context.Context, reviewID string) (*domain.Review, error) {
	var rev domain.Review
	err := r.get(ctx, &rev, `SELECT `+reviewColumns+` FROM reviews WHERE review_id = $1`, reviewID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *PostgresRepository) InsertReview(ctx context.Context, rev *domain.Review) error {
	err := r.get(ctx, rev, `
		INSERT INTO reviews (review_id, restaurant_id, user_id, rating, comment, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING `+reviewColumns,
		rev.ReviewID, rev.RestaurantID, rev.UserID, rev.Rating, rev.Comment)
	if c, ok := uniqueConstraint(err); ok && c == constraintReviewID {
		return domain.ErrDuplicateReview
	}
	return err
}

func (r *PostgresRepository) UpdateReviewContent(ctx context.Context, id, rating int, comment *string) error {
	_, err := r.exec(ctx, `
		UPDATE reviews
		SET rating=$1, comment=$2, updated_at=NOW()
		WHERE id=$3`, rating, comment, id)
	return err
}

func (r *PostgresRepository) DeleteReview(ctx context.Context, id int) (int64, error) {
	return r.exec(ctx, "DELETE FROM reviews WHERE id=$1", id)
}

// ActiveRatingStats aggregates the restaurant's active reviews. Count is 0 for an empty set.
func (r *PostgresRepository) ActiveRatingStats(ctx context.Context, restaurantID int) (domain.RatingStats, error) {
	var stats domain.RatingStats
	err := r.get(ctx, &stats, `
		SELECT COALESCE(AVG(rating), 0)::float8 AS avg_rating, COUNT(*) AS review_count
		FROM reviews
		WHERE restaurant_id = $1 AND is_active`, restaurantID)
	return stats, err
}

func (r *PostgresRepository) ListActiveReviews(ctx context.Context, restaurantID, skip, limit int) ([]domain.Review, error) {
	reviews := []domain.Review{}
	err := r.selectAll(ctx, &reviews, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE restaurant_id = $1 AND is_active
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3`, restaurantID, skip, limit)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
