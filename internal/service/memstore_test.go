package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Mark6482/restaurant-service/internal/domain"
	"github.com/Mark6482/restaurant-service/internal/service"
)

type txKey struct{}

// memStore is an in-memory stand-in for PostgresRepository. A failing
// transaction restores the snapshot taken when the outermost one began.
type memStore struct {
	mu          sync.Mutex
	nextID      int
	restaurants map[int]domain.Restaurant
	categories  map[int]domain.MenuCategory
	dishes      map[int]domain.Dish
	reviews     map[int]domain.Review

	statsErr error
}

func newMemStore() *memStore {
	return &memStore{
		restaurants: map[int]domain.Restaurant{},
		categories:  map[int]domain.MenuCategory{},
		dishes:      map[int]domain.Dish{},
		reviews:     map[int]domain.Review{},
	}
}

type memSnapshot struct {
	restaurants map[int]domain.Restaurant
	categories  map[int]domain.MenuCategory
	dishes      map[int]domain.Dish
	reviews     map[int]domain.Review
}

func copyMap[V any](m map[int]V) map[int]V {
	out := make(map[int]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	snap := memSnapshot{
		restaurants: copyMap(s.restaurants),
		categories:  copyMap(s.categories),
		dishes:      copyMap(s.dishes),
		reviews:     copyMap(s.reviews),
	}
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.restaurants, s.categories, s.dishes, s.reviews = snap.restaurants, snap.categories, snap.dishes, snap.reviews
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *memStore) CreateRestaurant(_ context.Context, rest *domain.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.restaurants {
		if r.Name == rest.Name {
			return domain.ErrDuplicateRestaurantName
		}
	}
	rest.ID = s.id()
	rest.CreatedAt = time.Now().UTC()
	s.restaurants[rest.ID] = *rest
	return nil
}

func (s *memStore) ListRestaurants(_ context.Context, skip, limit int) ([]domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, skip, limit), nil
}

func (s *memStore) GetRestaurant(_ context.Context, id int) (*domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return &r, nil
}

func (s *memStore) UpdateRestaurant(_ context.Context, rest *domain.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[rest.ID]; !ok {
		return domain.ErrRestaurantNotFound
	}
	for _, r := range s.restaurants {
		if r.ID != rest.ID && r.Name == rest.Name {
			return domain.ErrDuplicateRestaurantName
		}
	}
	now := time.Now().UTC()
	rest.UpdatedAt = &now
	s.restaurants[rest.ID] = *rest
	return nil
}

func (s *memStore) DeleteRestaurant(_ context.Context, id int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[id]; !ok {
		return 0, nil
	}
	delete(s.restaurants, id)
	for rid, rev := range s.reviews {
		if rev.RestaurantID == id {
			delete(s.reviews, rid)
		}
	}
	return 1, nil
}

func (s *memStore) CountCategories(_ context.Context, restaurantID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) ListCategories(_ context.Context, restaurantID int) ([]domain.MenuCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.MenuCategory
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (s *memStore) ListRestaurantDishes(_ context.Context, restaurantID int) ([]domain.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Dish
	for _, d := range s.dishes {
		if c, ok := s.categories[d.CategoryID]; ok && c.RestaurantID == restaurantID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) ListActiveReviews(_ context.Context, restaurantID, skip, limit int) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Review
	for _, r := range s.reviews {
		if r.RestaurantID == restaurantID && r.IsActive {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, skip, limit), nil
}

func (s *memStore) GetCategory(_ context.Context, id int) (*domain.MenuCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (s *memStore) CategoryNameExists(_ context.Context, restaurantID int, name string, excludeID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID && c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CategoryOrderIndexExists(_ context.Context, restaurantID, orderIndex int, excludeID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID && c.OrderIndex == orderIndex && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CreateCategory(_ context.Context, c *domain.MenuCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.categories[c.ID] = *c
	return nil
}

func (s *memStore) UpdateCategory(_ context.Context, c *domain.MenuCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *memStore) DeleteCategory(_ context.Context, id int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return 0, nil
	}
	delete(s.categories, id)
	return 1, nil
}

func (s *memStore) ListDishes(_ context.Context, categoryID int) ([]domain.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Dish
	for _, d := range s.dishes {
		if d.CategoryID == categoryID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) GetDish(_ context.Context, id int) (*domain.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dishes[id]
	if !ok {
		return nil, domain.ErrDishNotFound
	}
	return &d, nil
}

func (s *memStore) GetDishLocation(_ context.Context, dishID int) (*domain.DishLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dishes[dishID]
	if !ok {
		return nil, domain.ErrDishNotFound
	}
	c := s.categories[d.CategoryID]
	return &domain.DishLocation{
		DishID:         d.ID,
		DishName:       d.Name,
		CategoryID:     c.ID,
		RestaurantID:   c.RestaurantID,
		RestaurantName: s.restaurants[c.RestaurantID].Name,
	}, nil
}

func (s *memStore) CreateDish(_ context.Context, d *domain.Dish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.id()
	d.CreatedAt = time.Now().UTC()
	s.dishes[d.ID] = *d
	return nil
}

func (s *memStore) UpdateDish(_ context.Context, d *domain.Dish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dishes[d.ID]; !ok {
		return domain.ErrDishNotFound
	}
	s.dishes[d.ID] = *d
	return nil
}

func (s *memStore) DeleteDish(_ context.Context, id int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dishes[id]; !ok {
		return 0, nil
	}
	delete(s.dishes, id)
	return 1, nil
}

func (s *memStore) GetReviewByExternalID(_ context.Context, reviewID string) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ReviewID == reviewID {
			return &r, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (s *memStore) InsertReview(_ context.Context, rev *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ReviewID == rev.ReviewID {
			return domain.ErrDuplicateReview
		}
	}
	rev.ID = s.id()
	rev.CreatedAt = time.Now().UTC()
	s.reviews[rev.ID] = *rev
	return nil
}

func (s *memStore) UpdateReviewContent(_ context.Context, id, rating int, comment *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return domain.ErrReviewNotFound
	}
	r.Rating = rating
	r.Comment = comment
	s.reviews[id] = r
	return nil
}

func (s *memStore) DeleteReview(_ context.Context, id int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return 0, nil
	}
	delete(s.reviews, id)
	return 1, nil
}

func (s *memStore) ActiveRatingStats(_ context.Context, restaurantID int) (domain.RatingStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statsErr != nil {
		return domain.RatingStats{}, s.statsErr
	}
	var stats domain.RatingStats
	sum := 0
	for _, r := range s.reviews {
		if r.RestaurantID == restaurantID && r.IsActive {
			sum += r.Rating
			stats.Count++
		}
	}
	if stats.Count > 0 {
		stats.Average = float64(sum) / float64(stats.Count)
	}
	return stats, nil
}

func (s *memStore) SetRestaurantRating(_ context.Context, restaurantID int, average float64, count int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[restaurantID]
	if !ok {
		return false, nil
	}
	r.AverageRating = average
	r.ReviewCount = count
	s.restaurants[restaurantID] = r
	return true, nil
}

func (s *memStore) restaurant(id int) domain.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restaurants[id]
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// eventRecorder collects published payloads in order.
type eventRecorder struct {
	mu       sync.Mutex
	payloads []domain.Payload
}

func (r *eventRecorder) Publish(_ context.Context, p domain.Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
}

func (r *eventRecorder) events() []domain.Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Payload(nil), r.payloads...)
}

var (
	_ service.RestaurantRepository = (*memStore)(nil)
	_ service.CategoryRepository   = (*memStore)(nil)
	_ service.DishRepository       = (*memStore)(nil)
	_ service.ReviewRepository     = (*memStore)(nil)
	_ service.RatingRepository     = (*memStore)(nil)
	_ service.Events               = (*eventRecorder)(nil)
)
