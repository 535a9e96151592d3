package service

import (
	"context"

	"github.com/Mark6482/restaurant-service/internal/domain"
	"github.com/Mark6482/restaurant-service/internal/storage"
)

// Transactor runs fn inside one transaction carried by ctx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type RestaurantRepository interface {
	Transactor
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context, skip, limit int) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id int) (int64, error)
	CountCategories(ctx context.Context, restaurantID int) (int, error)
	ListCategories(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error)
	ListRestaurantDishes(ctx context.Context, restaurantID int) ([]domain.Dish, error)
	ListActiveReviews(ctx context.Context, restaurantID, skip, limit int) ([]domain.Review, error)
}

type CategoryRepository interface {
	Transactor
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	ListCategories(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error)
	GetCategory(ctx context.Context, id int) (*domain.MenuCategory, error)
	CategoryNameExists(ctx context.Context, restaurantID int, name string, excludeID int) (bool, error)
	CategoryOrderIndexExists(ctx context.Context, restaurantID, orderIndex int, excludeID int) (bool, error)
	CreateCategory(ctx context.Context, c *domain.MenuCategory) error
	UpdateCategory(ctx context.Context, c *domain.MenuCategory) error
	DeleteCategory(ctx context.Context, id int) (int64, error)
	ListDishes(ctx context.Context, categoryID int) ([]domain.Dish, error)
	DeleteDish(ctx context.Context, id int) (int64, error)
}

type DishRepository interface {
	Transactor
	GetCategory(ctx context.Context, id int) (*domain.MenuCategory, error)
	GetDish(ctx context.Context, id int) (*domain.Dish, error)
	GetDishLocation(ctx context.Context, dishID int) (*domain.DishLocation, error)
	CreateDish(ctx context.Context, d *domain.Dish) error
	UpdateDish(ctx context.Context, d *domain.Dish) error
	DeleteDish(ctx context.Context, id int) (int64, error)
}

type ReviewRepository interface {
	Transactor
	GetReviewByExternalID(ctx context.Context, reviewID string) (*domain.Review, error)
	InsertReview(ctx context.Context, rev *domain.Review) error
	UpdateReviewContent(ctx context.Context, id, rating int, comment *string) error
	DeleteReview(ctx context.Context, id int) (int64, error)
}

type RatingRepository interface {
	Transactor
	ActiveRatingStats(ctx context.Context, restaurantID int) (domain.RatingStats, error)
	SetRestaurantRating(ctx context.Context, restaurantID int, average float64, count int) (bool, error)
}

// RatingCache mirrors aggregates outside the relational store. It is optional everywhere it is used.
type RatingCache interface {
	SaveRating(ctx context.Context, snap domain.RatingSnapshot) error
	GetRating(ctx context.Context, restaurantID int) (*domain.RatingSnapshot, error)
	DeleteRating(ctx context.Context, restaurantID int) error
}

type ReviewCache interface {
	ReviewMarkerKey(reviewID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
	ClearMarker(ctx context.Context, key string) error
}

// MessagePublisher is the bus side of EventPublisher.
type MessagePublisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
	IsConnected() bool
}

// Events is what the catalog services need from the publisher.
type Events interface {
	Publish(ctx context.Context, payload domain.Payload)
}

type Recomputer interface {
	Recompute(ctx context.Context, restaurantID int) error
}

type RestaurantServiceInterface interface {
	Create(ctx context.Context, rest *domain.Restaurant) error
	List(ctx context.Context, skip, limit int) ([]domain.Restaurant, error)
	Get(ctx context.Context, id int) (*domain.Restaurant, error)
	Update(ctx context.Context, id int, upd RestaurantUpdate) (*domain.Restaurant, error)
	Delete(ctx context.Context, id int) error
	Menu(ctx context.Context, id int) (*domain.RestaurantMenu, error)
	Reviews(ctx context.Context, id, skip, limit int) ([]domain.Review, error)
	WithReviews(ctx context.Context, id int) (*domain.RestaurantWithReviews, error)
	Rating(ctx context.Context, id int) (*domain.RatingSnapshot, error)
}

type CategoryServiceInterface interface {
	List(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error)
	Create(ctx context.Context, c *domain.MenuCategory) (CreateCategoryResult, error)
	Update(ctx context.Context, restaurantID, categoryID int, upd CategoryUpdate) (*domain.MenuCategory, error)
	Delete(ctx context.Context, restaurantID, categoryID int, force bool) error
	Dishes(ctx context.Context, restaurantID, categoryID int) ([]domain.Dish, error)
}

type DishServiceInterface interface {
	Create(ctx context.Context, restaurantID int, d *domain.Dish) error
	Get(ctx context.Context, restaurantID, dishID int) (*domain.Dish, error)
	Update(ctx context.Context, restaurantID, dishID int, upd DishUpdate) (*domain.Dish, error)
	SetAvailability(ctx context.Context, restaurantID, dishID int, available bool) (*domain.Dish, error)
	Delete(ctx context.Context, restaurantID, dishID int) error
}

type ReviewHandler interface {
	HandleCreated(ctx context.Context, data domain.ReviewCreatedData) error
	HandleUpdated(ctx context.Context, data domain.ReviewUpdatedData) error
	HandleDeleted(ctx context.Context, data domain.ReviewDeletedData) error
}

type HealthServiceInterface interface {
	Check(ctx context.Context) HealthReport
}

type QRServiceInterface interface {
	MenuQRCode(ctx context.Context, restaurantID int) ([]byte, error)
}

var (
	_ RestaurantRepository = (*storage.PostgresRepository)(nil)
	_ CategoryRepository   = (*storage.PostgresRepository)(nil)
	_ DishRepository       = (*storage.PostgresRepository)(nil)
	_ ReviewRepository     = (*storage.PostgresRepository)(nil)
	_ RatingRepository     = (*storage.PostgresRepository)(nil)
	_ RatingCache          = (*storage.RedisCache)(nil)
	_ ReviewCache          = (*storage.RedisCache)(nil)
	_ MessagePublisher     = (*storage.KafkaPublisher)(nil)
)
