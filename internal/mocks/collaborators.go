package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Mark6482/restaurant-service/internal/domain"
	"github.com/Mark6482/restaurant-service/internal/service"
)

type ReviewHandler struct {
	mock.Mock
}

func NewReviewHandler(t testingT) *ReviewHandler {
	m := &ReviewHandler{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ReviewHandler) HandleCreated(ctx context.Context, data domain.ReviewCreatedData) error {
	ret := _m.Called(ctx, data)
	return ret.Error(0)
}

func (_m *ReviewHandler) HandleUpdated(ctx context.Context, data domain.ReviewUpdatedData) error {
	ret := _m.Called(ctx, data)
	return ret.Error(0)
}

func (_m *ReviewHandler) HandleDeleted(ctx context.Context, data domain.ReviewDeletedData) error {
	ret := _m.Called(ctx, data)
	return ret.Error(0)
}

type MessagePublisher struct {
	mock.Mock
}

func NewMessagePublisher(t testingT) *MessagePublisher {
	m := &MessagePublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MessagePublisher) Publish(ctx context.Context, topic, key string, value []byte) error {
	ret := _m.Called(ctx, topic, key, value)
	return ret.Error(0)
}

func (_m *MessagePublisher) IsConnected() bool {
	ret := _m.Called()
	return ret.Bool(0)
}

type RatingCache struct {
	mock.Mock
}

func NewRatingCache(t testingT) *RatingCache {
	m := &RatingCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *RatingCache) SaveRating(ctx context.Context, snap domain.RatingSnapshot) error {
	ret := _m.Called(ctx, snap)
	return ret.Error(0)
}

func (_m *RatingCache) GetRating(ctx context.Context, restaurantID int) (*domain.RatingSnapshot, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 *domain.RatingSnapshot
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.RatingSnapshot)
	}
	return r0, ret.Error(1)
}

func (_m *RatingCache) DeleteRating(ctx context.Context, restaurantID int) error {
	ret := _m.Called(ctx, restaurantID)
	return ret.Error(0)
}

type ReviewCache struct {
	mock.Mock
}

func NewReviewCache(t testingT) *ReviewCache {
	m := &ReviewCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ReviewCache) ReviewMarkerKey(reviewID string) string {
	ret := _m.Called(reviewID)
	return ret.String(0)
}

func (_m *ReviewCache) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (_m *ReviewCache) SetMarker(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

func (_m *ReviewCache) ClearMarker(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

var (
	_ service.ReviewHandler    = (*ReviewHandler)(nil)
	_ service.MessagePublisher = (*MessagePublisher)(nil)
	_ service.RatingCache      = (*RatingCache)(nil)
	_ service.ReviewCache      = (*ReviewCache)(nil)
)
