package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

type DishUpdate struct {
	Name            *string
	Description     *string
	Price           *decimal.Decimal
	Ingredients     *[]string
	Allergens       *[]string
	PreparationTime *int
	ImageURL        *string
}

func (u DishUpdate) apply(d *domain.Dish) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Description != nil {
		d.Description = *u.Description
	}
	if u.Price != nil {
		d.Price = u.Price.Round(2)
	}
	if u.Ingredients != nil {
		d.Ingredients = *u.Ingredients
	}
	if u.Allergens != nil {
		d.Allergens = *u.Allergens
	}
	if u.PreparationTime != nil {
		d.PreparationTime = *u.PreparationTime
	}
	if u.ImageURL != nil {
		d.ImageURL = u.ImageURL
	}
}

type DishService struct {
	repo   DishRepository
	events Events
}

func NewDishService(repo DishRepository, events Events) *DishService {
	return &DishService{repo: repo, events: events}
}

// Create inserts the dish under d.CategoryID, which must belong to restaurantID.
func (s *DishService) Create(ctx context.Context, restaurantID int, d *domain.Dish) error {
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetCategory(ctx, d.CategoryID)
		if err != nil {
			return err
		}
		if c.RestaurantID != restaurantID {
			return domain.ErrCategoryNotFound
		}
		d.Price = d.Price.Round(2)
		return s.repo.CreateDish(ctx, d)
	})
	if err != nil {
		return err
	}

	s.events.Publish(ctx, domain.DishCreated(domain.NewDishDetails(*d, restaurantID)))
	return nil
}

func (s *DishService) Get(ctx context.Context, restaurantID, dishID int) (*domain.Dish, error) {
	if _, err := s.locate(ctx, restaurantID, dishID); err != nil {
		return nil, err
	}
	return s.repo.GetDish(ctx, dishID)
}

func (s *DishService) Update(ctx context.Context, restaurantID, dishID int, upd DishUpdate) (*domain.Dish, error) {
	var d *domain.Dish
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.locate(ctx, restaurantID, dishID); err != nil {
			return err
		}
		current, err := s.repo.GetDish(ctx, dishID)
		if err != nil {
			return err
		}
		upd.apply(current)
		if err := s.repo.UpdateDish(ctx, current); err != nil {
			return err
		}
		d = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, domain.DishUpdated(domain.NewDishDetails(*d, restaurantID)))
	return d, nil
}

func (s *DishService) SetAvailability(ctx context.Context, restaurantID, dishID int, available bool) (*domain.Dish, error) {
	var d *domain.Dish
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.locate(ctx, restaurantID, dishID); err != nil {
			return err
		}
		current, err := s.repo.GetDish(ctx, dishID)
		if err != nil {
			return err
		}
		current.IsAvailable = available
		if err := s.repo.UpdateDish(ctx, current); err != nil {
			return err
		}
		d = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, domain.DishAvailabilityChanged{
		DishID:       d.ID,
		RestaurantID: restaurantID,
		Name:         d.Name,
		IsAvailable:  d.IsAvailable,
	})
	return d, nil
}

func (s *DishService) Delete(ctx context.Context, restaurantID, dishID int) error {
	var loc *domain.DishLocation
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if loc, err = s.locate(ctx, restaurantID, dishID); err != nil {
			return err
		}
		n, err := s.repo.DeleteDish(ctx, dishID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrDishNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.events.Publish(ctx, domain.DishDeleted{
		DishID:         loc.DishID,
		RestaurantID:   loc.RestaurantID,
		CategoryID:     loc.CategoryID,
		Name:           loc.DishName,
		RestaurantName: loc.RestaurantName,
	})
	return nil
}

// locate resolves the dish's owning restaurant; a dish under another restaurant is not found.
func (s *DishService) locate(ctx context.Context, restaurantID, dishID int) (*domain.DishLocation, error) {
	loc, err := s.repo.GetDishLocation(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if loc.RestaurantID != restaurantID {
		return nil, domain.ErrDishNotFound
	}
	return loc, nil
}

var _ DishServiceInterface = (*DishService)(nil)
