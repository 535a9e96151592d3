package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

const restaurantColumns = `id, name, COALESCE(description, '') AS description, address, phone, email,
	opening_hours, is_active, average_rating, review_count, created_at, updated_at`

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	err := r.get(ctx, rest, `
		INSERT INTO restaurants (name, description, address, phone, email, opening_hours, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+restaurantColumns,
		rest.Name, rest.Description, rest.Address, rest.Phone, rest.Email, rest.OpeningHours, rest.IsActive)
	return restaurantError(err)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context, skip, limit int) ([]domain.Restaurant, error) {
	restaurants := []domain.Restaurant{}
	err := r.selectAll(ctx, &restaurants, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		ORDER BY id
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.get(ctx, &rest, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// UpdateRestaurant writes the editable fields. Rating columns are owned by the aggregator.
func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	err := r.get(ctx, rest, `
		UPDATE restaurants
		SET name=$1, description=$2, address=$3, phone=$4, email=$5, opening_hours=$6, is_active=$7, updated_at=NOW()
		WHERE id=$8
		RETURNING `+restaurantColumns,
		rest.Name, rest.Description, rest.Address, rest.Phone, rest.Email, rest.OpeningHours, rest.IsActive, rest.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRestaurantNotFound
	}
	return restaurantError(err)
}

func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	return r.exec(ctx, "DELETE FROM restaurants WHERE id=$1", id)
}

func (r *PostgresRepository) CountCategories(ctx context.Context, restaurantID int) (int, error) {
	var n int
	err := r.get(ctx, &n, "SELECT COUNT(*) FROM menu_categories WHERE restaurant_id = $1", restaurantID)
	return n, err
}

// SetRestaurantRating overwrites the aggregate columns. It reports false when the restaurant is gone.
func (r *PostgresRepository) SetRestaurantRating(ctx context.Context, restaurantID int, average float64, count int) (bool, error) {
	n, err := r.exec(ctx, `
		UPDATE restaurants
		SET average_rating=$1, review_count=$2, updated_at=NOW()
		WHERE id=$3`, average, count, restaurantID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func restaurantError(err error) error {
	if c, ok := uniqueConstraint(err); ok && c == constraintRestaurantName {
		return domain.ErrDuplicateRestaurantName
	}
	return err
}
