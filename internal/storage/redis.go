package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) RatingKey(restaurantID int) string {
	return "restaurant:" + strconv.Itoa(restaurantID) + ":rating"
}

func (c *RedisCache) ReviewMarkerKey(reviewID string) string {
	return "review:" + reviewID
}

func (c *RedisCache) SaveRating(ctx context.Context, snap domain.RatingSnapshot) error {
	key := c.RatingKey(snap.RestaurantID)
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"average_rating": snap.AverageRating,
			"review_count":   snap.ReviewCount,
			"last_updated":   snap.UpdatedAt.Unix(),
		})
		pipe.Expire(ctx, key, c.TTL)
		return nil
	})
	return err
}

// GetRating returns domain.ErrNotFound on a cache miss.
func (c *RedisCache) GetRating(ctx context.Context, restaurantID int) (*domain.RatingSnapshot, error) {
	fields, err := c.Client.HGetAll(ctx, c.RatingKey(restaurantID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, domain.ErrNotFound
	}

	avg, err := strconv.ParseFloat(fields["average_rating"], 64)
	if err != nil {
		return nil, errors.Join(domain.ErrNotFound, err)
	}
	count, err := strconv.Atoi(fields["review_count"])
	if err != nil {
		return nil, errors.Join(domain.ErrNotFound, err)
	}
	updated, _ := strconv.ParseInt(fields["last_updated"], 10, 64)

	return &domain.RatingSnapshot{
		RestaurantID:  restaurantID,
		AverageRating: avg,
		ReviewCount:   count,
		UpdatedAt:     time.Unix(updated, 0).UTC(),
		Source:        "cache",
	}, nil
}

func (c *RedisCache) DeleteRating(ctx context.Context, restaurantID int) error {
	return c.Client.Del(ctx, c.RatingKey(restaurantID)).Err()
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string) error {
	return c.Client.Set(ctx, key, "1", c.TTL).Err()
}

func (c *RedisCache) ClearMarker(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
