package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ExternalID
		wantErr bool
	}{
		{name: "string", input: `{"review_id":"r-17"}`, want: "r-17"},
		{name: "integer", input: `{"review_id":101}`, want: "101"},
		{name: "null", input: `{"review_id":null}`, want: ""},
		{name: "object", input: `{"review_id":{"id":1}}`, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var data ReviewDeletedData
			err := json.Unmarshal([]byte(testCase.input), &data)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, data.ReviewID)
		})
	}
}

func TestNewEnvelope(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	env := NewEnvelope(DishAvailabilityChanged{DishID: 4, RestaurantID: 1, Name: "Soup", IsAvailable: false}, now)

	_, err := uuid.Parse(env.EventID)
	require.NoError(t, err)
	assert.Equal(t, EventDishAvailabilityChanged, env.EventType)
	assert.Equal(t, time.UTC, env.Timestamp.Location())
	assert.Equal(t, "4", env.Data.PartitionKey())

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`{
		"event_id": %q,
		"event_type": "dish.availability_changed",
		"timestamp": "2024-03-01T09:00:00Z",
		"source_service": "restaurant-service",
		"data": {"dish_id": 4, "restaurant_id": 1, "name": "Soup", "is_available": false}
	}`, env.EventID), string(raw))
}

func TestNewDishDetails(t *testing.T) {
	details := NewDishDetails(Dish{
		ID:         9,
		CategoryID: 2,
		Name:       "Soup",
		Price:      decimal.RequireFromString("7.25"),
	}, 1)

	assert.Equal(t, 7.25, details.Price)
	assert.Equal(t, 1, details.RestaurantID)
	assert.Equal(t, []string{}, details.Ingredients)
	assert.Equal(t, []string{}, details.Allergens)

	raw, err := json.Marshal(DishCreated(details))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ingredients":[]`)
	assert.Contains(t, string(raw), `"image_url":null`)
}

func TestOpeningHoursSQL(t *testing.T) {
	value, err := OpeningHours{"mon": "09:00-22:00"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"mon":"09:00-22:00"}`, string(value.([]byte)))

	value, err = OpeningHours(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	tests := []struct {
		name    string
		src     interface{}
		want    OpeningHours
		wantErr bool
	}{
		{name: "bytes", src: []byte(`{"tue":"10-18"}`), want: OpeningHours{"tue": "10-18"}},
		{name: "string", src: `{"tue":"10-18"}`, want: OpeningHours{"tue": "10-18"}},
		{name: "nil", src: nil, want: nil},
		{name: "json null", src: []byte("null"), want: nil},
		{name: "unsupported", src: 42, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var h OpeningHours
			err := h.Scan(testCase.src)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, h)
		})
	}
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(ErrDishNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrDuplicateOrderIndex, ErrConflict))
	assert.False(t, errors.Is(ErrInvalidRating, ErrConflict))

	var err error = fmt.Errorf("delete category: %w", &CategoryNotEmptyError{Dishes: 3})
	assert.ErrorIs(t, err, ErrConflict)

	var notEmpty *CategoryNotEmptyError
	require.ErrorAs(t, err, &notEmpty)
	assert.Equal(t, 3, notEmpty.Dishes)
	assert.Equal(t, "category contains 3 dishes, use force=true to delete anyway", notEmpty.Error())
}

func TestReviewTopics(t *testing.T) {
	assert.Equal(t, []string{
		"restaurant.review_created",
		"restaurant.review_updated",
		"restaurant.review_deleted",
	}, ReviewTopics())
}
