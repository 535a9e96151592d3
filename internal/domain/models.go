package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OpeningHours maps a day name to a free-text hours string, e.g. "mon": "09:00-22:00".
type OpeningHours map[string]string

func (h OpeningHours) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

func (h *OpeningHours) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*h = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("opening hours: unsupported type %T", src)
	}
	if len(raw) == 0 || string(raw) == "null" {
		*h = nil
		return nil
	}
	return json.Unmarshal(raw, h)
}

type Restaurant struct {
	ID            int          `db:"id" json:"id"`
	Name          string       `db:"name" json:"name"`
	Description   string       `db:"description" json:"description"`
	Address       string       `db:"address" json:"address"`
	Phone         string       `db:"phone" json:"phone"`
	Email         string       `db:"email" json:"email"`
	OpeningHours  OpeningHours `db:"opening_hours" json:"opening_hours"`
	IsActive      bool         `db:"is_active" json:"is_active"`
	AverageRating float64      `db:"average_rating" json:"average_rating"`
	ReviewCount   int          `db:"review_count" json:"review_count"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time   `db:"updated_at" json:"updated_at"`
}

type MenuCategory struct {
	ID           int    `db:"id" json:"id"`
	RestaurantID int    `db:"restaurant_id" json:"restaurant_id"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description"`
	OrderIndex   int    `db:"order_index" json:"order_index"`
	IsActive     bool   `db:"is_active" json:"is_active"`
}

type Dish struct {
	ID              int             `db:"id" json:"id"`
	CategoryID      int             `db:"category_id" json:"category_id"`
	Name            string          `db:"name" json:"name"`
	Description     string          `db:"description" json:"description"`
	Price           decimal.Decimal `db:"price" json:"price"`
	Ingredients     pq.StringArray  `db:"ingredients" json:"ingredients"`
	Allergens       pq.StringArray  `db:"allergens" json:"allergens"`
	PreparationTime int             `db:"preparation_time" json:"preparation_time"`
	IsAvailable     bool            `db:"is_available" json:"is_available"`
	IsActive        bool            `db:"is_active" json:"is_active"`
	ImageURL        *string         `db:"image_url" json:"image_url"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time      `db:"updated_at" json:"updated_at"`
}

// Review is the local replica of a review owned by the review service.
// ReviewID is the identifier issued upstream and the idempotency key for events.
type Review struct {
	ID           int        `db:"id" json:"id"`
	ReviewID     string     `db:"review_id" json:"review_id"`
	RestaurantID int        `db:"restaurant_id" json:"restaurant_id"`
	UserID       int        `db:"user_id" json:"user_id"`
	Rating       int        `db:"rating" json:"rating"`
	Comment      *string    `db:"comment" json:"comment"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at"`
}

// RatingStats is the aggregate over a restaurant's active reviews.
// Count is zero when the restaurant has no active reviews, Average is then meaningless.
type RatingStats struct {
	Average float64 `db:"avg_rating" json:"average_rating"`
	Count   int     `db:"review_count" json:"review_count"`
}

// RatingSnapshot is the cached copy of a restaurant's aggregate.
type RatingSnapshot struct {
	RestaurantID  int       `json:"restaurant_id"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	UpdatedAt     time.Time `json:"updated_at"`
	Source        string    `json:"source"`
}

type CategoryWithDishes struct {
	MenuCategory
	Dishes []Dish `json:"dishes"`
}

type RestaurantMenu struct {
	Restaurant
	Categories []CategoryWithDishes `json:"menu_categories"`
}

type RestaurantWithReviews struct {
	Restaurant
	Reviews []Review `json:"reviews"`
}

// DishLocation ties a dish to the category and restaurant that own it.
type DishLocation struct {
	DishID         int    `db:"dish_id"`
	DishName       string `db:"dish_name"`
	CategoryID     int    `db:"category_id"`
	RestaurantID   int    `db:"restaurant_id"`
	RestaurantName string `db:"restaurant_name"`
}
