package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"socialhub/internal/common"
	"socialhub/internal/logger"
	"socialhub/internal/metrics"
)

// RedisCache stores JSON values with a TTL. Redis failures degrade to cache misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(host, port, password string) (*redis.Client, error) {
	if port == "" {
		port = "6379"
	}
	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 2,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Log.Info("Redis client connected", zap.String("address", addr))
	return client, nil
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) GetStats(ctx context.Context, userID uint64) (*ProfileStats, bool) {
	var stats ProfileStats
	if !c.getJSON(ctx, "stats", statsKey(userID), &stats) {
		return nil, false
	}
	return &stats, true
}

func (c *RedisCache) SetStats(ctx context.Context, userID uint64, stats *ProfileStats) {
	c.setJSON(ctx, statsKey(userID), stats)
}

func (c *RedisCache) GetSuggestions(ctx context.Context, userID uint64) ([]common.UserSummary, bool) {
	var users []common.UserSummary
	if !c.getJSON(ctx, "suggestions", suggestionsKey(userID), &users) {
		return nil, false
	}
	return users, true
}

func (c *RedisCache) SetSuggestions(ctx context.Context, userID uint64, users []common.UserSummary) {
	c.setJSON(ctx, suggestionsKey(userID), users)
}

func (c *RedisCache) Invalidate(ctx context.Context, userIDs ...uint64) {
	if len(userIDs) == 0 {
		return
	}
	keys := make([]string, 0, 2*len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, statsKey(id), suggestionsKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("redis invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *RedisCache) getJSON(ctx context.Context, name, key string, dest interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		metrics.RecordCacheMiss(name)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Log.Warn("redis value corrupt", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheMiss(name)
		return false
	}
	metrics.RecordCacheHit(name)
	return true
}

func (c *RedisCache) setJSON(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Log.Warn("redis marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Log.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}
