package utils

import (
	"context"
	"encoding/json"
	"time"

	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/redis/go-redis/v9"
)

// GetCacheData reads and decodes the value stored under cacheKey.
// A cache miss is not an error, both return values are nil.
func GetCacheData[T any](ctx context.Context, rdb *redis.Client, cacheKey string) (*T, *app_error.AppError) {
	val, err := rdb.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, app_error.Internal("Failed to read from redis", "redis")
	}

	var data T
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, app_error.Internal("Failed to decode cached value", "json")
	}

	return &data, nil
}

func SetCacheData[T any](ctx context.Context, rdb *redis.Client, cacheKey string, data *T, expire time.Duration) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return app_error.Internal("Failed to encode value for cache", "json")
	}

	return rdb.Set(ctx, cacheKey, bytes, expire).Err()
}

func DeleteCacheData(ctx context.Context, rdb *redis.Client, cacheKey string) error {
	return rdb.Del(ctx, cacheKey).Err()
}
