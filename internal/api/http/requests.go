package httpapi

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Mark6482/restaurant-service/internal/domain"
	"github.com/Mark6482/restaurant-service/internal/service"
)

type restaurantCreateRequest struct {
	Name         string              `json:"name" validate:"required,max=255"`
	Description  string              `json:"description"`
	Address      string              `json:"address" validate:"required,max=255"`
	Phone        string              `json:"phone" validate:"required,max=64"`
	Email        string              `json:"email" validate:"required,email"`
	OpeningHours domain.OpeningHours `json:"opening_hours"`
}

func (req restaurantCreateRequest) toDomain() *domain.Restaurant {
	return &domain.Restaurant{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		OpeningHours: req.OpeningHours,
		IsActive:     true,
	}
}

type restaurantUpdateRequest struct {
	Name         *string              `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string              `json:"description"`
	Address      *string              `json:"address" validate:"omitempty,min=1,max=255"`
	Phone        *string              `json:"phone" validate:"omitempty,min=1,max=64"`
	Email        *string              `json:"email" validate:"omitempty,email"`
	OpeningHours *domain.OpeningHours `json:"opening_hours"`
	IsActive     *bool                `json:"is_active"`
}

func (req restaurantUpdateRequest) toUpdate() service.RestaurantUpdate {
	return service.RestaurantUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		OpeningHours: req.OpeningHours,
		IsActive:     req.IsActive,
	}
}

type categoryCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" validate:"gte=0"`
}

type categoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"is_active"`
}

type dishCreateRequest struct {
	Name            string           `json:"name" validate:"required,max=255"`
	Description     string           `json:"description"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	Ingredients     []string         `json:"ingredients"`
	Allergens       []string         `json:"allergens"`
	PreparationTime *int             `json:"preparation_time" validate:"required,gte=0"`
	ImageURL        *string          `json:"image_url" validate:"omitempty,url"`
}

func (req dishCreateRequest) toDomain(categoryID int) (*domain.Dish, error) {
	if req.Price.IsNegative() {
		return nil, badRequest("price must not be negative")
	}
	ingredients := req.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	allergens := req.Allergens
	if allergens == nil {
		allergens = []string{}
	}
	return &domain.Dish{
		CategoryID:      categoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           *req.Price,
		Ingredients:     ingredients,
		Allergens:       allergens,
		PreparationTime: *req.PreparationTime,
		IsAvailable:     true,
		IsActive:        true,
		ImageURL:        req.ImageURL,
	}, nil
}

type dishUpdateRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Ingredients     *[]string        `json:"ingredients"`
	Allergens       *[]string        `json:"allergens"`
	PreparationTime *int             `json:"preparation_time" validate:"omitempty,gte=0"`
	ImageURL        *string          `json:"image_url" validate:"omitempty,url"`
}

func (req dishUpdateRequest) toUpdate() (service.DishUpdate, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return service.DishUpdate{}, badRequest("price must not be negative")
	}
	return service.DishUpdate{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Ingredients:     req.Ingredients,
		Allergens:       req.Allergens,
		PreparationTime: req.PreparationTime,
		ImageURL:        req.ImageURL,
	}, nil
}

type availabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return h.validate.Struct(dst)
}
