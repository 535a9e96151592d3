package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

// RestaurantUpdate carries a partial update; nil fields are left untouched.
type RestaurantUpdate struct {
	Name         *string
	Description  *string
	Address      *string
	Phone        *string
	Email        *string
	OpeningHours *domain.OpeningHours
	IsActive     *bool
}

func (u RestaurantUpdate) apply(rest *domain.Restaurant) {
	if u.Name != nil {
		rest.Name = *u.Name
	}
	if u.Description != nil {
		rest.Description = *u.Description
	}
	if u.Address != nil {
		rest.Address = *u.Address
	}
	if u.Phone != nil {
		rest.Phone = *u.Phone
	}
	if u.Email != nil {
		rest.Email = *u.Email
	}
	if u.OpeningHours != nil {
		rest.OpeningHours = *u.OpeningHours
	}
	if u.IsActive != nil {
		rest.IsActive = *u.IsActive
	}
}

type RestaurantService struct {
	repo   RestaurantRepository
	events Events
	cache  RatingCache
}

func NewRestaurantService(repo RestaurantRepository, events Events, cache RatingCache) *RestaurantService {
	return &RestaurantService{repo: repo, events: events, cache: cache}
}

func (s *RestaurantService) Create(ctx context.Context, rest *domain.Restaurant) error {
	if err := s.repo.CreateRestaurant(ctx, rest); err != nil {
		return err
	}

	s.events.Publish(ctx, domain.RestaurantCreated{
		RestaurantID: rest.ID,
		Name:         rest.Name,
		Description:  rest.Description,
		Address:      rest.Address,
		Phone:        rest.Phone,
		Email:        rest.Email,
		OpeningHours: rest.OpeningHours,
		IsActive:     rest.IsActive,
	})
	return nil
}

func (s *RestaurantService) List(ctx context.Context, skip, limit int) ([]domain.Restaurant, error) {
	skip, limit = clampPage(skip, limit)
	return s.repo.ListRestaurants(ctx, skip, limit)
}

func (s *RestaurantService) Get(ctx context.Context, id int) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

func (s *RestaurantService) Update(ctx context.Context, id int, upd RestaurantUpdate) (*domain.Restaurant, error) {
	var rest *domain.Restaurant
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetRestaurant(ctx, id)
		if err != nil {
			return err
		}
		upd.apply(current)
		if err := s.repo.UpdateRestaurant(ctx, current); err != nil {
			return err
		}
		rest = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rest, nil
}

// Delete refuses to drop a restaurant that still owns menu categories.
// The cached rating is evicted once the row is gone.
func (s *RestaurantService) Delete(ctx context.Context, id int) error {
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetRestaurant(ctx, id); err != nil {
			return err
		}
		n, err := s.repo.CountCategories(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrRestaurantNotEmpty
		}
		if _, err := s.repo.DeleteRestaurant(ctx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DeleteRating(ctx, id); err != nil {
			log.Warn().Err(err).Int("restaurant_id", id).Msg("Failed to evict cached rating")
		}
	}
	return nil
}

// Menu returns the restaurant with its categories by order index and each category's dishes by name.
func (s *RestaurantService) Menu(ctx context.Context, id int) (*domain.RestaurantMenu, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx, id)
	if err != nil {
		return nil, err
	}
	dishes, err := s.repo.ListRestaurantDishes(ctx, id)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[int][]domain.Dish, len(categories))
	for _, d := range dishes {
		byCategory[d.CategoryID] = append(byCategory[d.CategoryID], d)
	}

	menu := &domain.RestaurantMenu{
		Restaurant: *rest,
		Categories: make([]domain.CategoryWithDishes, 0, len(categories)),
	}
	for _, c := range categories {
		items := byCategory[c.ID]
		if items == nil {
			items = []domain.Dish{}
		}
		menu.Categories = append(menu.Categories, domain.CategoryWithDishes{MenuCategory: c, Dishes: items})
	}
	return menu, nil
}

func (s *RestaurantService) Reviews(ctx context.Context, id, skip, limit int) ([]domain.Review, error) {
	if _, err := s.repo.GetRestaurant(ctx, id); err != nil {
		return nil, err
	}
	skip, limit = clampPage(skip, limit)
	return s.repo.ListActiveReviews(ctx, id, skip, limit)
}

func (s *RestaurantService) WithReviews(ctx context.Context, id int) (*domain.RestaurantWithReviews, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListActiveReviews(ctx, id, 0, maxListLimit)
	if err != nil {
		return nil, err
	}
	return &domain.RestaurantWithReviews{Restaurant: *rest, Reviews: reviews}, nil
}

// Rating serves the cached aggregate and falls back to the restaurant row.
func (s *RestaurantService) Rating(ctx context.Context, id int) (*domain.RatingSnapshot, error) {
	if s.cache != nil {
		snap, err := s.cache.GetRating(ctx, id)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Int("restaurant_id", id).Msg("Rating cache read failed")
		}
	}

	rest, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := rest.CreatedAt
	if rest.UpdatedAt != nil {
		updated = *rest.UpdatedAt
	}
	return &domain.RatingSnapshot{
		RestaurantID:  rest.ID,
		AverageRating: rest.AverageRating,
		ReviewCount:   rest.ReviewCount,
		UpdatedAt:     updated.UTC(),
		Source:        "database",
	}, nil
}

// maxListLimit caps list endpoints.
const maxListLimit = 100

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	return skip, limit
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)
