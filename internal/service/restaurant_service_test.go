package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mark6482/restaurant-service/internal/domain"
	"github.com/Mark6482/restaurant-service/internal/mocks"
	"github.com/Mark6482/restaurant-service/internal/service"
	"github.com/Mark6482/restaurant-service/internal/storage"
)

func TestRestaurantCreatePublishes(t *testing.T) {
	store := newMemStore()
	events := &eventRecorder{}
	svc := service.NewRestaurantService(store, events, nil)

	rest := &domain.Restaurant{
		Name:         "Trattoria",
		Address:      "Main st. 1",
		OpeningHours: domain.OpeningHours{"mon": "09:00-22:00"},
		IsActive:     true,
	}
	require.NoError(t, svc.Create(context.Background(), rest))

	published := events.events()
	require.Len(t, published, 1)
	ev, ok := published[0].(domain.RestaurantCreated)
	require.True(t, ok)
	assert.Equal(t, rest.ID, ev.RestaurantID)
	assert.Equal(t, "Trattoria", ev.Name)
	assert.Equal(t, domain.OpeningHours{"mon": "09:00-22:00"}, ev.OpeningHours)

	err := svc.Create(context.Background(), &domain.Restaurant{Name: "Trattoria"})
	assert.ErrorIs(t, err, domain.ErrDuplicateRestaurantName)
	assert.Len(t, events.events(), 1)
}

func TestRestaurantUpdatePartial(t *testing.T) {
	store := newMemStore()
	rest := seedRestaurant(t, store, "Trattoria")
	svc := service.NewRestaurantService(store, &eventRecorder{}, nil)

	phone := "+7 900 000 00 00"
	inactive := false
	updated, err := svc.Update(context.Background(), rest.ID, service.RestaurantUpdate{Phone: &phone, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Trattoria", updated.Name)
	assert.Equal(t, "Main st. 1", updated.Address)
	assert.Equal(t, phone, updated.Phone)
	assert.False(t, updated.IsActive)
	assert.NotNil(t, updated.UpdatedAt)

	_, err = svc.Update(context.Background(), rest.ID+100, service.RestaurantUpdate{Phone: &phone})
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestRestaurantDelete(t *testing.T) {
	tests := []struct {
		name       string
		categories int
		wantErr    error
	}{
		{name: "empty restaurant", categories: 0},
		{name: "restaurant with categories", categories: 2, wantErr: domain.ErrRestaurantNotEmpty},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := newMemStore()
			rest := seedRestaurant(t, store, "Trattoria")
			for i := 0; i < testCase.categories; i++ {
				seedCategory(t, store, rest.ID, string(rune('A'+i)), i)
			}
			svc := service.NewRestaurantService(store, &eventRecorder{}, nil)

			err := svc.Delete(context.Background(), rest.ID)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.ErrorIs(t, err, domain.ErrConflict)
				assert.Len(t, store.restaurants, 1)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, store.restaurants)
		})
	}
}

func TestRestaurantDeleteEvictsCachedRating(t *testing.T) {
	store := newMemStore()
	rest := seedRestaurant(t, store, "Trattoria")
	seedReview(t, store, rest.ID, "r-1", 5, true)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cache := storage.NewRedisCache(rdb, time.Hour)

	require.NoError(t, service.NewRatingAggregator(store, cache, false).Recompute(ctx, rest.ID))
	svc := service.NewRestaurantService(store, &eventRecorder{}, cache)
	snap, err := svc.Rating(ctx, rest.ID)
	require.NoError(t, err)
	require.Equal(t, "cache", snap.Source)

	require.NoError(t, svc.Delete(ctx, rest.ID))

	assert.False(t, mr.Exists(cache.RatingKey(rest.ID)))
	_, err = svc.Rating(ctx, rest.ID)
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestRestaurantDeleteCacheEviction(t *testing.T) {
	tests := []struct {
		name       string
		categories int
		evictErr   error
		wantErr    error
	}{
		{name: "evicted after commit", evictErr: nil},
		{name: "eviction failure does not fail delete", evictErr: errors.New("redis down")},
		{name: "not evicted when delete is refused", categories: 1, wantErr: domain.ErrRestaurantNotEmpty},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := newMemStore()
			rest := seedRestaurant(t, store, "Trattoria")
			for i := 0; i < testCase.categories; i++ {
				seedCategory(t, store, rest.ID, string(rune('A'+i)), i)
			}
			cache := mocks.NewRatingCache(t)
			if testCase.wantErr == nil {
				cache.On("DeleteRating", mock.Anything, rest.ID).Return(testCase.evictErr).Once()
			}
			svc := service.NewRestaurantService(store, &eventRecorder{}, cache)

			err := svc.Delete(context.Background(), rest.ID)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, store.restaurants)
		})
	}
}

func TestRestaurantMenu(t *testing.T) {
	store := newMemStore()
	rest := seedRestaurant(t, store, "Trattoria")
	drinks := seedCategory(t, store, rest.ID, "Drinks", 2)
	pizza := seedCategory(t, store, rest.ID, "Pizza", 1)
	seedCategory(t, store, rest.ID, "Desserts", 3)
	seedDish(t, store, pizza.ID, "Margherita", "10")
	seedDish(t, store, pizza.ID, "Diavola", "12")
	seedDish(t, store, drinks.ID, "Lemonade", "3")
	svc := service.NewRestaurantService(store, &eventRecorder{}, nil)

	menu, err := svc.Menu(context.Background(), rest.ID)
	require.NoError(t, err)

	assert.Equal(t, "Trattoria", menu.Name)
	require.Len(t, menu.Categories, 3)
	assert.Equal(t, "Pizza", menu.Categories[0].Name)
	assert.Equal(t, "Drinks", menu.Categories[1].Name)
	assert.Equal(t, "Desserts", menu.Categories[2].Name)

	require.Len(t, menu.Categories[0].Dishes, 2)
	assert.Equal(t, "Diavola", menu.Categories[0].Dishes[0].Name)
	assert.Equal(t, "Margherita", menu.Categories[0].Dishes[1].Name)
	assert.NotNil(t, menu.Categories[2].Dishes)
	assert.Empty(t, menu.Categories[2].Dishes)

	_, err = svc.Menu(context.Background(), rest.ID+100)
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestRestaurantReviewsNewestFirst(t *testing.T) {
	store := newMemStore()
	rest := seedRestaurant(t, store, "Trattoria")
	reviews := service.NewReviewService(store, nil, service.NewRatingAggregator(store, nil, false))
	for i, id := range []string{"r-1", "r-2", "r-3"} {
		require.NoError(t, reviews.HandleCreated(context.Background(), domain.ReviewCreatedData{
			ReviewID: domain.ExternalID(id), RestaurantID: rest.ID, UserID: i + 1, Rating: 5,
		}))
	}
	svc := service.NewRestaurantService(store, &eventRecorder{}, nil)

	page, err := svc.Reviews(context.Background(), rest.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "r-3", page[0].ReviewID)
	assert.Equal(t, "r-2", page[1].ReviewID)

	withReviews, err := svc.WithReviews(context.Background(), rest.ID)
	require.NoError(t, err)
	assert.Len(t, withReviews.Reviews, 3)
	assert.Equal(t, 3, withReviews.ReviewCount)

	_, err = svc.Reviews(context.Background(), rest.ID+100, 0, 10)
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestRestaurantRating(t *testing.T) {
	store := newMemStore()
	rest := seedRestaurant(t, store, "Trattoria")
	_, err := store.SetRestaurantRating(context.Background(), rest.ID, 4.5, 2)
	require.NoError(t, err)

	cached := &domain.RatingSnapshot{RestaurantID: rest.ID, AverageRating: 4.5, ReviewCount: 2, UpdatedAt: time.Now().UTC(), Source: "cache"}

	tests := []struct {
		name       string
		cacheSnap  *domain.RatingSnapshot
		cacheErr   error
		wantSource string
	}{
		{name: "cache hit", cacheSnap: cached, wantSource: "cache"},
		{name: "cache miss", cacheErr: domain.ErrNotFound, wantSource: "database"},
		{name: "cache failure", cacheErr: errors.New("redis down"), wantSource: "database"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cache := mocks.NewRatingCache(t)
			cache.On("GetRating", mock.Anything, rest.ID).Return(testCase.cacheSnap, testCase.cacheErr).Once()
			svc := service.NewRestaurantService(store, &eventRecorder{}, cache)

			snap, err := svc.Rating(context.Background(), rest.ID)
			require.NoError(t, err)
			assert.Equal(t, testCase.wantSource, snap.Source)
			assert.Equal(t, 4.5, snap.AverageRating)
			assert.Equal(t, 2, snap.ReviewCount)
		})
	}
}

func TestRestaurantListClampsPage(t *testing.T) {
	store := newMemStore()
	for _, name := range []string{"A", "B", "C"} {
		seedRestaurant(t, store, name)
	}
	svc := service.NewRestaurantService(store, &eventRecorder{}, nil)

	tests := []struct {
		name  string
		skip  int
		limit int
		want  []string
	}{
		{name: "default limit", skip: 0, limit: 0, want: []string{"A", "B", "C"}},
		{name: "negative skip", skip: -3, limit: 2, want: []string{"A", "B"}},
		{name: "second page", skip: 2, limit: 2, want: []string{"C"}},
		{name: "past the end", skip: 10, limit: 2, want: []string{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			list, err := svc.List(context.Background(), testCase.skip, testCase.limit)
			require.NoError(t, err)
			names := make([]string, 0, len(list))
			for _, r := range list {
				names = append(names, r.Name)
			}
			assert.Equal(t, testCase.want, names)
		})
	}
}
