package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrRestaurantNotFound = fmt.Errorf("restaurant %w", ErrNotFound)
	ErrCategoryNotFound   = fmt.Errorf("category %w", ErrNotFound)
	ErrDishNotFound       = fmt.Errorf("dish %w", ErrNotFound)
	ErrReviewNotFound     = fmt.Errorf("review %w", ErrNotFound)

	ErrConflict                = errors.New("conflict")
	ErrDuplicateRestaurantName = fmt.Errorf("%w: restaurant with this name already exists", ErrConflict)
	ErrDuplicateCategoryName   = fmt.Errorf("%w: category with this name already exists for this restaurant", ErrConflict)
	ErrDuplicateOrderIndex     = fmt.Errorf("%w: category with this order_index already exists for this restaurant", ErrConflict)
	ErrDuplicateReview         = fmt.Errorf("%w: review already exists", ErrConflict)
	ErrRestaurantNotEmpty      = fmt.Errorf("%w: restaurant still has menu categories", ErrConflict)

	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// CategoryNotEmptyError is returned when a category with dishes is deleted without force.
type CategoryNotEmptyError struct {
	Dishes int
}

func (e *CategoryNotEmptyError) Error() string {
	return fmt.Sprintf("category contains %d dishes, use force=true to delete anyway", e.Dishes)
}

func (e *CategoryNotEmptyError) Unwrap() error { return ErrConflict }
