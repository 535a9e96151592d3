package storage

import (
	"context"
	"fmt"
)

const (
	constraintRestaurantName     = "uq_restaurants_name"
	constraintCategoryName       = "uq_menu_categories_name"
	constraintCategoryOrderIndex = "uq_menu_categories_order_index"
	constraintReviewID           = "uq_reviews_review_id"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id             SERIAL PRIMARY KEY,
		name           VARCHAR(255) NOT NULL,
		description    TEXT,
		address        VARCHAR(255) NOT NULL DEFAULT '',
		phone          VARCHAR(64) NOT NULL DEFAULT '',
		email          VARCHAR(255) NOT NULL DEFAULT '',
		opening_hours  JSONB,
		is_active      BOOLEAN NOT NULL DEFAULT TRUE,
		average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		review_count   INTEGER NOT NULL DEFAULT 0 CHECK (review_count >= 0),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ,
		CONSTRAINT uq_restaurants_name UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS menu_categories (
		id            SERIAL PRIMARY KEY,
		restaurant_id INTEGER NOT NULL REFERENCES restaurants(id),
		name          VARCHAR(255) NOT NULL,
		description   TEXT,
		order_index   INTEGER NOT NULL DEFAULT 0,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		CONSTRAINT uq_menu_categories_name UNIQUE (restaurant_id, name),
		CONSTRAINT uq_menu_categories_order_index UNIQUE (restaurant_id, order_index)
	)`,
	`CREATE TABLE IF NOT EXISTS dishes (
		id               SERIAL PRIMARY KEY,
		category_id      INTEGER NOT NULL REFERENCES menu_categories(id),
		name             VARCHAR(255) NOT NULL,
		description      TEXT,
		price            NUMERIC(10, 2) NOT NULL,
		ingredients      TEXT[] NOT NULL DEFAULT '{}',
		allergens        TEXT[] NOT NULL DEFAULT '{}',
		preparation_time INTEGER NOT NULL DEFAULT 0,
		is_available     BOOLEAN NOT NULL DEFAULT TRUE,
		is_active        BOOLEAN NOT NULL DEFAULT TRUE,
		image_url        VARCHAR(512),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dishes_category_id ON dishes (category_id)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id            SERIAL PRIMARY KEY,
		review_id     VARCHAR(64) NOT NULL,
		restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		user_id       INTEGER NOT NULL,
		rating        INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment       TEXT,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ,
		CONSTRAINT uq_reviews_review_id UNIQUE (review_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_restaurant_active ON reviews (restaurant_id) WHERE is_active`,
}

// EnsureSchema creates the tables when they are missing. It never alters existing ones.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
