package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

// ReviewService applies review lifecycle events to the local review replica.
// Every handler tolerates duplicates and out-of-order delivery: a repeated
// create, or an update or delete for an unknown review, is a logged no-op.
type ReviewService struct {
	repo       ReviewRepository
	cache      ReviewCache
	aggregator Recomputer
}

func NewReviewService(repo ReviewRepository, cache ReviewCache, aggregator Recomputer) *ReviewService {
	return &ReviewService{repo: repo, cache: cache, aggregator: aggregator}
}

func (s *ReviewService) HandleCreated(ctx context.Context, data domain.ReviewCreatedData) error {
	reviewID := string(data.ReviewID)
	if reviewID == "" {
		return errors.New("review_created: missing review_id")
	}
	if !validRating(data.Rating) {
		return fmt.Errorf("review_created %s: %w", reviewID, domain.ErrInvalidRating)
	}
	logger := log.With().Str("review_id", reviewID).Int("restaurant_id", data.RestaurantID).Logger()

	if s.seen(ctx, reviewID) {
		logger.Warn().Msg("Review already exists, skipping")
		return nil
	}

	duplicate := false
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.repo.GetReviewByExternalID(ctx, reviewID)
		if err == nil {
			duplicate = true
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return s.repo.InsertReview(ctx, &domain.Review{
			ReviewID:     reviewID,
			RestaurantID: data.RestaurantID,
			UserID:       data.UserID,
			Rating:       data.Rating,
			Comment:      data.Comment,
			IsActive:     true,
		})
	})
	if errors.Is(err, domain.ErrDuplicateReview) {
		duplicate, err = true, nil
	}
	if err != nil {
		return fmt.Errorf("create review %s: %w", reviewID, err)
	}

	s.mark(ctx, reviewID)
	if duplicate {
		logger.Warn().Msg("Review already exists, skipping")
		return nil
	}

	logger.Info().Int("rating", data.Rating).Msg("Review created")
	s.recompute(ctx, data.RestaurantID)
	return nil
}

func (s *ReviewService) HandleUpdated(ctx context.Context, data domain.ReviewUpdatedData) error {
	reviewID := string(data.ReviewID)
	if reviewID == "" {
		return errors.New("review_updated: missing review_id")
	}
	if !validRating(data.NewRating) {
		return fmt.Errorf("review_updated %s: %w", reviewID, domain.ErrInvalidRating)
	}
	logger := log.With().Str("review_id", reviewID).Logger()

	var (
		review        *domain.Review
		ratingChanged bool
	)
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		review, err = s.repo.GetReviewByExternalID(ctx, reviewID)
		if err != nil {
			return err
		}
		ratingChanged = review.Rating != data.NewRating
		return s.repo.UpdateReviewContent(ctx, review.ID, data.NewRating, data.NewComment)
	})
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn().Msg("Review not found for update, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("update review %s: %w", reviewID, err)
	}

	logger.Info().Int("restaurant_id", review.RestaurantID).Bool("rating_changed", ratingChanged).Msg("Review updated")
	if ratingChanged {
		s.recompute(ctx, review.RestaurantID)
	}
	return nil
}

func (s *ReviewService) HandleDeleted(ctx context.Context, data domain.ReviewDeletedData) error {
	reviewID := string(data.ReviewID)
	if reviewID == "" {
		return errors.New("review_deleted: missing review_id")
	}
	logger := log.With().Str("review_id", reviewID).Logger()

	var restaurantID int
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		review, err := s.repo.GetReviewByExternalID(ctx, reviewID)
		if err != nil {
			return err
		}
		restaurantID = review.RestaurantID
		_, err = s.repo.DeleteReview(ctx, review.ID)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn().Msg("Review not found for delete, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete review %s: %w", reviewID, err)
	}

	if s.cache != nil {
		if err := s.cache.ClearMarker(ctx, s.cache.ReviewMarkerKey(reviewID)); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear review marker")
		}
	}
	logger.Info().Int("restaurant_id", restaurantID).Msg("Review deleted")
	s.recompute(ctx, restaurantID)
	return nil
}

// seen consults the marker cache. Cache errors fall through to the database check.
func (s *ReviewService) seen(ctx context.Context, reviewID string) bool {
	if s.cache == nil {
		return false
	}
	exists, err := s.cache.Exists(ctx, s.cache.ReviewMarkerKey(reviewID))
	if err != nil {
		log.Debug().Err(err).Str("review_id", reviewID).Msg("Review marker lookup failed")
		return false
	}
	return exists
}

func (s *ReviewService) mark(ctx context.Context, reviewID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.SetMarker(ctx, s.cache.ReviewMarkerKey(reviewID))
}

// recompute failures are already logged by the aggregator and leave the old aggregate in place.
func (s *ReviewService) recompute(ctx context.Context, restaurantID int) {
	_ = s.aggregator.Recompute(ctx, restaurantID)
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

var _ ReviewHandler = (*ReviewService)(nil)
