package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

type CategoryOutcome int

const (
	CategoryCreated CategoryOutcome = iota
	CategoryDuplicateName
	CategoryDuplicateOrderIndex
)

func (o CategoryOutcome) String() string {
	switch o {
	case CategoryCreated:
		return "created"
	case CategoryDuplicateName:
		return "duplicate_name"
	case CategoryDuplicateOrderIndex:
		return "duplicate_order_index"
	}
	return "unknown"
}

// CreateCategoryResult holds Category only when Outcome is CategoryCreated.
type CreateCategoryResult struct {
	Outcome  CategoryOutcome
	Category *domain.MenuCategory
}

// Err maps a rejected outcome to its conflict error, nil when created.
func (r CreateCategoryResult) Err() error {
	switch r.Outcome {
	case CategoryDuplicateName:
		return domain.ErrDuplicateCategoryName
	case CategoryDuplicateOrderIndex:
		return domain.ErrDuplicateOrderIndex
	}
	return nil
}

type CategoryUpdate struct {
	Name        *string
	Description *string
	OrderIndex  *int
	IsActive    *bool
}

type CategoryService struct {
	repo   CategoryRepository
	events Events
}

func NewCategoryService(repo CategoryRepository, events Events) *CategoryService {
	return &CategoryService{repo: repo, events: events}
}

func (s *CategoryService) List(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error) {
	if _, err := s.repo.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.ListCategories(ctx, restaurantID)
}

// Create checks name first and order index second. A unique violation raised
// by a concurrent insert maps to the same outcomes.
func (s *CategoryService) Create(ctx context.Context, c *domain.MenuCategory) (CreateCategoryResult, error) {
	var result CreateCategoryResult
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetRestaurant(ctx, c.RestaurantID); err != nil {
			return err
		}

		exists, err := s.repo.CategoryNameExists(ctx, c.RestaurantID, c.Name, 0)
		if err != nil {
			return err
		}
		if exists {
			result.Outcome = CategoryDuplicateName
			return nil
		}

		exists, err = s.repo.CategoryOrderIndexExists(ctx, c.RestaurantID, c.OrderIndex, 0)
		if err != nil {
			return err
		}
		if exists {
			result.Outcome = CategoryDuplicateOrderIndex
			return nil
		}

		if err := s.repo.CreateCategory(ctx, c); err != nil {
			return err
		}
		result = CreateCategoryResult{Outcome: CategoryCreated, Category: c}
		return nil
	})

	switch {
	case errors.Is(err, domain.ErrDuplicateCategoryName):
		return CreateCategoryResult{Outcome: CategoryDuplicateName}, nil
	case errors.Is(err, domain.ErrDuplicateOrderIndex):
		return CreateCategoryResult{Outcome: CategoryDuplicateOrderIndex}, nil
	case err != nil:
		return CreateCategoryResult{}, err
	}
	return result, nil
}

func (s *CategoryService) Update(ctx context.Context, restaurantID, categoryID int, upd CategoryUpdate) (*domain.MenuCategory, error) {
	var updated *domain.MenuCategory
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.owned(ctx, restaurantID, categoryID)
		if err != nil {
			return err
		}

		if upd.Name != nil && *upd.Name != c.Name {
			exists, err := s.repo.CategoryNameExists(ctx, restaurantID, *upd.Name, c.ID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateCategoryName
			}
			c.Name = *upd.Name
		}
		if upd.OrderIndex != nil && *upd.OrderIndex != c.OrderIndex {
			exists, err := s.repo.CategoryOrderIndexExists(ctx, restaurantID, *upd.OrderIndex, c.ID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateOrderIndex
			}
			c.OrderIndex = *upd.OrderIndex
		}
		if upd.Description != nil {
			c.Description = *upd.Description
		}
		if upd.IsActive != nil {
			c.IsActive = *upd.IsActive
		}

		if err := s.repo.UpdateCategory(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an empty category. With force every dish is deleted first and
// one dish.deleted event per dish goes out after the commit.
func (s *CategoryService) Delete(ctx context.Context, restaurantID, categoryID int, force bool) error {
	var deleted []domain.DishDeleted
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.owned(ctx, restaurantID, categoryID)
		if err != nil {
			return err
		}
		dishes, err := s.repo.ListDishes(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(dishes) > 0 && !force {
			return &domain.CategoryNotEmptyError{Dishes: len(dishes)}
		}

		if len(dishes) > 0 {
			rest, err := s.repo.GetRestaurant(ctx, restaurantID)
			if err != nil {
				return err
			}
			for _, d := range dishes {
				if _, err := s.repo.DeleteDish(ctx, d.ID); err != nil {
					return err
				}
				deleted = append(deleted, domain.DishDeleted{
					DishID:         d.ID,
					RestaurantID:   rest.ID,
					CategoryID:     c.ID,
					Name:           d.Name,
					RestaurantName: rest.Name,
				})
			}
		}

		n, err := s.repo.DeleteCategory(ctx, c.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(deleted) > 0 {
		log.Info().Int("category_id", categoryID).Int("dishes", len(deleted)).Msg("Category force-deleted with dishes")
	}
	for _, ev := range deleted {
		s.events.Publish(ctx, ev)
	}
	return nil
}

func (s *CategoryService) Dishes(ctx context.Context, restaurantID, categoryID int) ([]domain.Dish, error) {
	c, err := s.owned(ctx, restaurantID, categoryID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListDishes(ctx, c.ID)
}

// owned loads a category and hides it when it belongs to another restaurant.
func (s *CategoryService) owned(ctx context.Context, restaurantID, categoryID int) (*domain.MenuCategory, error) {
	c, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if c.RestaurantID != restaurantID {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

var _ CategoryServiceInterface = (*CategoryService)(nil)
