package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps read-mostly trip metadata. Seat state never goes through
// the cache.
type RedisCache struct {
	client  redis.UniversalClient
	tripTTL time.Duration
}

func NewRedisCache(cfg utils.RedisConfig) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisCacheWithClient(client, time.Duration(cfg.TripCacheTTLSec)*time.Second)
}

func NewRedisCacheWithClient(client redis.UniversalClient, tripTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, tripTTL: tripTTL}
}

// GetTrip returns nil, nil on a cache miss.
func (c *RedisCache) GetTrip(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	data, err := c.client.Get(ctx, tripKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var trip entity.Trip
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *RedisCache) SetTrip(ctx context.Context, trip *entity.Trip) error {
	payload, err := json.Marshal(trip)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tripKey(trip.ID), payload, c.tripTTL).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func tripKey(id uuid.UUID) string {
	return fmt.Sprintf("cache:trip:%s", id.String())
}
