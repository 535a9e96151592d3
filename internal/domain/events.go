package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const SourceService = "restaurant-service"

// Published event types. Each one is also the topic it is published to.
const (
	EventRestaurantCreated       = "restaurant.created"
	EventDishCreated             = "dish.created"
	EventDishUpdated             = "dish.updated"
	EventDishAvailabilityChanged = "dish.availability_changed"
	EventDishDeleted             = "dish.deleted"
)

// Consumed review lifecycle topics.
const (
	TopicReviewCreated = "restaurant.review_created"
	TopicReviewUpdated = "restaurant.review_updated"
	TopicReviewDeleted = "restaurant.review_deleted"
)

func ReviewTopics() []string {
	return []string{TopicReviewCreated, TopicReviewUpdated, TopicReviewDeleted}
}

// Payload is implemented only by the event payloads in this package.
type Payload interface {
	EventType() string
	// PartitionKey groups events of one aggregate on one partition.
	PartitionKey() string
	isPayload()
}

// Envelope wraps every event on the bus.
type Envelope[T any] struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	Timestamp     time.Time `json:"timestamp"`
	SourceService string    `json:"source_service"`
	Data          T         `json:"data"`
}

func NewEnvelope[T Payload](data T, now time.Time) Envelope[T] {
	return Envelope[T]{
		EventID:       uuid.New().String(),
		EventType:     data.EventType(),
		Timestamp:     now.UTC(),
		SourceService: SourceService,
		Data:          data,
	}
}

type RestaurantCreated struct {
	RestaurantID int          `json:"restaurant_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	OpeningHours OpeningHours `json:"opening_hours"`
	IsActive     bool         `json:"is_active"`
}

func (RestaurantCreated) EventType() string      { return EventRestaurantCreated }
func (p RestaurantCreated) PartitionKey() string { return strconv.Itoa(p.RestaurantID) }
func (RestaurantCreated) isPayload()             {}

// DishDetails is the full dish schema shared by dish.created and dish.updated.
type DishDetails struct {
	DishID          int      `json:"dish_id"`
	RestaurantID    int      `json:"restaurant_id"`
	CategoryID      int      `json:"category_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Ingredients     []string `json:"ingredients"`
	Allergens       []string `json:"allergens"`
	PreparationTime int      `json:"preparation_time"`
	IsAvailable     bool     `json:"is_available"`
	ImageURL        *string  `json:"image_url"`
}

func NewDishDetails(d Dish, restaurantID int) DishDetails {
	ingredients := []string(d.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	allergens := []string(d.Allergens)
	if allergens == nil {
		allergens = []string{}
	}
	return DishDetails{
		DishID:          d.ID,
		RestaurantID:    restaurantID,
		CategoryID:      d.CategoryID,
		Name:            d.Name,
		Description:     d.Description,
		Price:           d.Price.InexactFloat64(),
		Ingredients:     ingredients,
		Allergens:       allergens,
		PreparationTime: d.PreparationTime,
		IsAvailable:     d.IsAvailable,
		ImageURL:        d.ImageURL,
	}
}

type DishCreated DishDetails

func (DishCreated) EventType() string      { return EventDishCreated }
func (p DishCreated) PartitionKey() string { return strconv.Itoa(p.DishID) }
func (DishCreated) isPayload()             {}

type DishUpdated DishDetails

func (DishUpdated) EventType() string      { return EventDishUpdated }
func (p DishUpdated) PartitionKey() string { return strconv.Itoa(p.DishID) }
func (DishUpdated) isPayload()             {}

type DishAvailabilityChanged struct {
	DishID       int    `json:"dish_id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	IsAvailable  bool   `json:"is_available"`
}

func (DishAvailabilityChanged) EventType() string      { return EventDishAvailabilityChanged }
func (p DishAvailabilityChanged) PartitionKey() string { return strconv.Itoa(p.DishID) }
func (DishAvailabilityChanged) isPayload()             {}

type DishDeleted struct {
	DishID         int    `json:"dish_id"`
	RestaurantID   int    `json:"restaurant_id"`
	CategoryID     int    `json:"category_id"`
	Name           string `json:"name"`
	RestaurantName string `json:"restaurant_name"`
}

func (DishDeleted) EventType() string      { return EventDishDeleted }
func (p DishDeleted) PartitionKey() string { return strconv.Itoa(p.DishID) }
func (DishDeleted) isPayload()             {}

// ExternalID accepts both JSON strings and numbers, upstream producers are not consistent.
type ExternalID string

func (id *ExternalID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ExternalID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("review_id: %w", err)
	}
	*id = ExternalID(n.String())
	return nil
}

type ReviewCreatedData struct {
	ReviewID     ExternalID `json:"review_id"`
	RestaurantID int        `json:"restaurant_id"`
	UserID       int        `json:"user_id"`
	Rating       int        `json:"rating"`
	Comment      *string    `json:"comment,omitempty"`
}

type ReviewUpdatedData struct {
	ReviewID   ExternalID `json:"review_id"`
	NewRating  int        `json:"new_rating"`
	NewComment *string    `json:"new_comment,omitempty"`
}

type ReviewDeletedData struct {
	ReviewID ExternalID `json:"review_id"`
}
