package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cidrsum/internal/ipv4"
	"cidrsum/internal/model"
)

const keyPrefix = "agg:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// GetResult returns nil without an error on a miss.
func (r *RedisCache) GetResult(ctx context.Context, key string) (*model.AggregateResult, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get result from cache",
			zap.String("key", key),
			zap.Error(err))
		return nil, err
	}

	result, err := decodeResult(data)
	if err != nil {
		// Drop the entry so the next request rewrites it.
		r.client.Del(ctx, keyPrefix+key)
		return nil, fmt.Errorf("decoding cached result %s: %w", key, err)
	}
	return result, nil
}

func (r *RedisCache) SetResult(ctx context.Context, key string, result *model.AggregateResult) error {
	data, err := encodeResult(result)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, keyPrefix+key, data, r.ttl).Err()
	if err != nil {
		r.logger.Error("failed to set result in cache",
			zap.String("key", key),
			zap.Error(err))
	}
	return err
}

func encodeResult(result *model.AggregateResult) ([]byte, error) {
	cached := model.CachedResult{
		Networks:   make([]string, 0, len(result.Networks)),
		InputCount: result.InputCount,
	}
	for _, n := range result.Networks {
		cached.Networks = append(cached.Networks, n.String())
	}
	return json.Marshal(cached)
}

func decodeResult(data []byte) (*model.AggregateResult, error) {
	var cached model.CachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	result := &model.AggregateResult{
		Networks:   make([]ipv4.Network, 0, len(cached.Networks)),
		InputCount: cached.InputCount,
	}
	for _, s := range cached.Networks {
		n, err := ipv4.Parse(s)
		if err != nil {
			return nil, err
		}
		result.Networks = append(result.Networks, n)
	}
	return result, nil
}
