package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Mark6482/restaurant-service/internal/domain"
	"github.com/Mark6482/restaurant-service/internal/service"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type RestaurantServiceInterface struct {
	mock.Mock
}

func NewRestaurantServiceInterface(t testingT) *RestaurantServiceInterface {
	m := &RestaurantServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *RestaurantServiceInterface) Create(ctx context.Context, rest *domain.Restaurant) error {
	ret := _m.Called(ctx, rest)
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Restaurant) error); ok {
		return rf(ctx, rest)
	}
	return ret.Error(0)
}

func (_m *RestaurantServiceInterface) List(ctx context.Context, skip, limit int) ([]domain.Restaurant, error) {
	ret := _m.Called(ctx, skip, limit)
	var r0 []domain.Restaurant
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) Get(ctx context.Context, id int) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Restaurant
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) Update(ctx context.Context, id int, upd service.RestaurantUpdate) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id, upd)
	var r0 *domain.Restaurant
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) Delete(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *RestaurantServiceInterface) Menu(ctx context.Context, id int) (*domain.RestaurantMenu, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.RestaurantMenu
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.RestaurantMenu)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) Reviews(ctx context.Context, id, skip, limit int) ([]domain.Review, error) {
	ret := _m.Called(ctx, id, skip, limit)
	var r0 []domain.Review
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Review)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) WithReviews(ctx context.Context, id int) (*domain.RestaurantWithReviews, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.RestaurantWithReviews
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.RestaurantWithReviews)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) Rating(ctx context.Context, id int) (*domain.RatingSnapshot, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.RatingSnapshot
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.RatingSnapshot)
	}
	return r0, ret.Error(1)
}

type CategoryServiceInterface struct {
	mock.Mock
}

func NewCategoryServiceInterface(t testingT) *CategoryServiceInterface {
	m := &CategoryServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CategoryServiceInterface) List(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 []domain.MenuCategory
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuCategory)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryServiceInterface) Create(ctx context.Context, c *domain.MenuCategory) (service.CreateCategoryResult, error) {
	ret := _m.Called(ctx, c)
	var r0 service.CreateCategoryResult
	if v := ret.Get(0); v != nil {
		r0 = v.(service.CreateCategoryResult)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryServiceInterface) Update(ctx context.Context, restaurantID, categoryID int, upd service.CategoryUpdate) (*domain.MenuCategory, error) {
	ret := _m.Called(ctx, restaurantID, categoryID, upd)
	var r0 *domain.MenuCategory
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuCategory)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryServiceInterface) Delete(ctx context.Context, restaurantID, categoryID int, force bool) error {
	ret := _m.Called(ctx, restaurantID, categoryID, force)
	return ret.Error(0)
}

func (_m *CategoryServiceInterface) Dishes(ctx context.Context, restaurantID, categoryID int) ([]domain.Dish, error) {
	ret := _m.Called(ctx, restaurantID, categoryID)
	var r0 []domain.Dish
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Dish)
	}
	return r0, ret.Error(1)
}

type DishServiceInterface struct {
	mock.Mock
}

func NewDishServiceInterface(t testingT) *DishServiceInterface {
	m := &DishServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *DishServiceInterface) Create(ctx context.Context, restaurantID int, d *domain.Dish) error {
	ret := _m.Called(ctx, restaurantID, d)
	if rf, ok := ret.Get(0).(func(context.Context, int, *domain.Dish) error); ok {
		return rf(ctx, restaurantID, d)
	}
	return ret.Error(0)
}

func (_m *DishServiceInterface) Get(ctx context.Context, restaurantID, dishID int) (*domain.Dish, error) {
	ret := _m.Called(ctx, restaurantID, dishID)
	var r0 *domain.Dish
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Dish)
	}
	return r0, ret.Error(1)
}

func (_m *DishServiceInterface) Update(ctx context.Context, restaurantID, dishID int, upd service.DishUpdate) (*domain.Dish, error) {
	ret := _m.Called(ctx, restaurantID, dishID, upd)
	var r0 *domain.Dish
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Dish)
	}
	return r0, ret.Error(1)
}

func (_m *DishServiceInterface) SetAvailability(ctx context.Context, restaurantID, dishID int, available bool) (*domain.Dish, error) {
	ret := _m.Called(ctx, restaurantID, dishID, available)
	var r0 *domain.Dish
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Dish)
	}
	return r0, ret.Error(1)
}

func (_m *DishServiceInterface) Delete(ctx context.Context, restaurantID, dishID int) error {
	ret := _m.Called(ctx, restaurantID, dishID)
	return ret.Error(0)
}

type HealthServiceInterface struct {
	mock.Mock
}

func NewHealthServiceInterface(t testingT) *HealthServiceInterface {
	m := &HealthServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *HealthServiceInterface) Check(ctx context.Context) service.HealthReport {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.HealthReport)
}

type QRServiceInterface struct {
	mock.Mock
}

func NewQRServiceInterface(t testingT) *QRServiceInterface {
	m := &QRServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *QRServiceInterface) MenuQRCode(ctx context.Context, restaurantID int) ([]byte, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

var (
	_ service.RestaurantServiceInterface = (*RestaurantServiceInterface)(nil)
	_ service.CategoryServiceInterface   = (*CategoryServiceInterface)(nil)
	_ service.DishServiceInterface       = (*DishServiceInterface)(nil)
	_ service.HealthServiceInterface     = (*HealthServiceInterface)(nil)
	_ service.QRServiceInterface         = (*QRServiceInterface)(nil)
)
