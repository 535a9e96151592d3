package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

// RatingAggregator recomputes a restaurant's average rating and review count
// from its active reviews.
//
// With no active reviews nothing is written and the previous aggregate stays
// in place unless resetOnEmpty is set, in which case 0/0 is stored.
type RatingAggregator struct {
	repo         RatingRepository
	cache        RatingCache
	resetOnEmpty bool
	now          func() time.Time
}

func NewRatingAggregator(repo RatingRepository, cache RatingCache, resetOnEmpty bool) *RatingAggregator {
	return &RatingAggregator{repo: repo, cache: cache, resetOnEmpty: resetOnEmpty, now: time.Now}
}

// Recompute runs in its own transaction. On error the stored aggregate is left untouched.
func (a *RatingAggregator) Recompute(ctx context.Context, restaurantID int) error {
	var (
		stats   domain.RatingStats
		written bool
	)
	err := a.repo.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		stats, err = a.repo.ActiveRatingStats(ctx, restaurantID)
		if err != nil {
			return err
		}
		if stats.Count == 0 {
			if !a.resetOnEmpty {
				return nil
			}
			stats.Average = 0
		}
		written, err = a.repo.SetRestaurantRating(ctx, restaurantID, stats.Average, stats.Count)
		return err
	})
	if err != nil {
		log.Error().Err(err).Int("restaurant_id", restaurantID).Msg("Failed to recompute restaurant rating")
		return err
	}

	logger := log.With().Int("restaurant_id", restaurantID).Logger()
	if !written {
		if stats.Count == 0 {
			logger.Info().Msg("No active reviews, rating left unchanged")
		} else {
			logger.Warn().Msg("Restaurant not found, rating not stored")
		}
		return nil
	}
	logger.Info().Float64("avg_rating", stats.Average).Int("review_count", stats.Count).Msg("Restaurant rating updated")

	if a.cache != nil {
		snap := domain.RatingSnapshot{
			RestaurantID:  restaurantID,
			AverageRating: stats.Average,
			ReviewCount:   stats.Count,
			UpdatedAt:     a.now().UTC(),
			Source:        "aggregator",
		}
		if err := a.cache.SaveRating(ctx, snap); err != nil {
			logger.Warn().Err(err).Msg("Failed to mirror rating to cache")
			// a stale mirror would shadow the stored row until it expires
			if err := a.cache.DeleteRating(ctx, restaurantID); err != nil {
				logger.Warn().Err(err).Msg("Failed to evict cached rating")
			}
		}
	}
	return nil
}

var _ Recomputer = (*RatingAggregator)(nil)
