package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

const categoryColumns = `id, restaurant_id, name, COALESCE(description, '') AS description, order_index, is_active`

func (r *PostgresRepository) ListCategories(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error) {
	categories := []domain.MenuCategory{}
	err := r.selectAll(ctx, &categories, `
		SELECT `+categoryColumns+`
		FROM menu_categories
		WHERE restaurant_id = $1
		ORDER BY order_index`, restaurantID)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id int) (*domain.MenuCategory, error) {
	var c domain.MenuCategory
	err := r.get(ctx, &c, `SELECT `+categoryColumns+` FROM menu_categories WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryNameExists checks the name among the restaurant's categories, ignoring excludeID.
func (r *PostgresRepository) CategoryNameExists(ctx context.Context, restaurantID int, name string, excludeID int) (bool, error) {
	var exists bool
	err := r.get(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM menu_categories WHERE restaurant_id = $1 AND name = $2 AND id <> $3
		)`, restaurantID, name, excludeID)
	return exists, err
}

func (r *PostgresRepository) CategoryOrderIndexExists(ctx context.Context, restaurantID, orderIndex int, excludeID int) (bool, error) {
	var exists bool
	err := r.get(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM menu_categories WHERE restaurant_id = $1 AND order_index = $2 AND id <> $3
		)`, restaurantID, orderIndex, excludeID)
	return exists, err
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *domain.MenuCategory) error {
	err := r.get(ctx, c, `
		INSERT INTO menu_categories (restaurant_id, name, description, order_index, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		c.RestaurantID, c.Name, c.Description, c.OrderIndex, c.IsActive)
	return categoryError(err)
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, c *domain.MenuCategory) error {
	err := r.get(ctx, c, `
		UPDATE menu_categories
		SET name=$1, description=$2, order_index=$3, is_active=$4
		WHERE id=$5
		RETURNING `+categoryColumns,
		c.Name, c.Description, c.OrderIndex, c.IsActive, c.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrCategoryNotFound
	}
	return categoryError(err)
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int) (int64, error) {
	return r.exec(ctx, "DELETE FROM menu_categories WHERE id=$1", id)
}

func categoryError(err error) error {
	c, ok := uniqueConstraint(err)
	if !ok {
		return err
	}
	switch c {
	case constraintCategoryName:
		return domain.ErrDuplicateCategoryName
	case constraintCategoryOrderIndex:
		return domain.ErrDuplicateOrderIndex
	}
	return err
}
