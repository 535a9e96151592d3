package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

const dishColumns = `id, category_id, name, COALESCE(description, '') AS description, price, ingredients, allergens,
	preparation_time, is_available, is_active, image_url, created_at, updated_at`

const joinedDishColumns = `d.id, d.category_id, d.name, COALESCE(d.description, '') AS description, d.price,
	d.ingredients, d.allergens, d.preparation_time, d.is_available, d.is_active, d.image_url,
	d.created_at, d.updated_at`

func (r *PostgresRepository) ListDishes(ctx context.Context, categoryID int) ([]domain.Dish, error) {
	dishes := []domain.Dish{}
	err := r.selectAll(ctx, &dishes, `
		SELECT `+dishColumns+`
		FROM dishes
		WHERE category_id = $1
		ORDER BY name`, categoryID)
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

// ListRestaurantDishes returns every dish under any of the restaurant's categories.
func (r *PostgresRepository) ListRestaurantDishes(ctx context.Context, restaurantID int) ([]domain.Dish, error) {
	dishes := []domain.Dish{}
	err := r.selectAll(ctx, &dishes, `
		SELECT `+joinedDishColumns+`
		FROM dishes d
		JOIN menu_categories c ON c.id = d.category_id
		WHERE c.restaurant_id = $1
		ORDER BY c.order_index, d.name`, restaurantID)
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *PostgresRepository) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	var d domain.Dish
	err := r.get(ctx, &d, `SELECT `+dishColumns+` FROM dishes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) CreateDish(ctx context.Context, d *domain.Dish) error {
	return r.get(ctx, d, `
		INSERT INTO dishes (category_id, name, description, price, ingredients, allergens,
			preparation_time, is_available, is_active, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+dishColumns,
		d.CategoryID, d.Name, d.Description, d.Price, d.Ingredients, d.Allergens,
		d.PreparationTime, d.IsAvailable, d.IsActive, d.ImageURL)
}

func (r *PostgresRepository) UpdateDish(ctx context.Context, d *domain.Dish) error {
	err := r.get(ctx, d, `
		UPDATE dishes
		SET category_id=$1, name=$2, description=$3, price=$4, ingredients=$5, allergens=$6,
			preparation_time=$7, is_available=$8, is_active=$9, image_url=$10, updated_at=NOW()
		WHERE id=$11
		RETURNING `+dishColumns,
		d.CategoryID, d.Name, d.Description, d.Price, d.Ingredients, d.Allergens,
		d.PreparationTime, d.IsAvailable, d.IsActive, d.ImageURL, d.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrDishNotFound
	}
	return err
}

func (r *PostgresRepository) DeleteDish(ctx context.Context, id int) (int64, error) {
	return r.exec(ctx, "DELETE FROM dishes WHERE id=$1", id)
}

func (r *PostgresRepository) GetDishLocation(ctx context.Context, dishID int) (*domain.DishLocation, error) {
	var loc domain.DishLocation
	err := r.get(ctx, &loc, `
		SELECT d.id AS dish_id, d.name AS dish_name, c.id AS category_id,
			r.id AS restaurant_id, r.name AS restaurant_name
		FROM dishes d
		JOIN menu_categories c ON c.id = d.category_id
		JOIN restaurants r ON r.id = c.restaurant_id
		WHERE d.id = $1`, dishID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
