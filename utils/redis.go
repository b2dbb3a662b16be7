package utils

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// EstateListCacheKey caches the public estate list; it is dropped on every
// estate write so readers never see a stale listing for longer than the TTL.
const EstateListCacheKey = "estates:all"

const EstateListCacheTTL = 5 * time.Minute

var RedisClient *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	password := os.Getenv("REDIS_PASSWORD")

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func GetCached(ctx context.Context, key string, dest interface{}) (bool, error) {
	if RedisClient == nil {
		return false, nil
	}
	data, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

func SetCached(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

func InvalidateCache(ctx context.Context, keys ...string) {
	if RedisClient == nil {
		return
	}
	RedisClient.Del(ctx, keys...)
}
