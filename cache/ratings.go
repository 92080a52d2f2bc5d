package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RatingTTL bounds staleness of cached rating aggregates.
const RatingTTL = 5 * time.Minute

// InitRedis connects and pings; callers may run without Redis entirely.
func InitRedis(addr string, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis connection established", zap.String("addr", addr))
	return rdb, nil
}

// Rating is the cached aggregate for one restaurant.
type Rating struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// RatingCache caches per-restaurant review aggregates. A nil cache (or a
// cache without a client) degrades to always-miss.
type RatingCache struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRatingCache(rdb *redis.Client, log *zap.Logger) *RatingCache {
	return &RatingCache{rdb: rdb, log: log}
}

func (c *RatingCache) key(restaurantID string) string {
	return "rating:" + restaurantID
}

func (c *RatingCache) Get(ctx context.Context, restaurantID string) (Rating, bool) {
	if c == nil || c.rdb == nil {
		return Rating{}, false
	}
	data, err := c.rdb.Get(ctx, c.key(restaurantID)).Bytes()
	if err != nil {
		return Rating{}, false
	}
	var r Rating
	if err := json.Unmarshal(data, &r); err != nil {
		return Rating{}, false
	}
	return r, true
}

func (c *RatingCache) Set(ctx context.Context, restaurantID string, r Rating) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(restaurantID), data, RatingTTL).Err(); err != nil {
		c.log.Warn("failed to cache rating", zap.String("restaurant_id", restaurantID), zap.Error(err))
	}
}

func (c *RatingCache) Invalidate(ctx context.Context, restaurantID string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(restaurantID)).Err(); err != nil {
		c.log.Warn("failed to invalidate rating", zap.String("restaurant_id", restaurantID), zap.Error(err))
	}
}
