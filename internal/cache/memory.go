package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"socialhub/internal/common"
	"socialhub/internal/metrics"
)

// MemoryCache is the in-process backend used when no Redis host is configured.
type MemoryCache struct {
	stats       *expirable.LRU[uint64, ProfileStats]
	suggestions *expirable.LRU[uint64, []common.UserSummary]
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = 4096
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryCache{
		stats:       expirable.NewLRU[uint64, ProfileStats](size, nil, ttl),
		suggestions: expirable.NewLRU[uint64, []common.UserSummary](size, nil, ttl),
	}
}

func (c *MemoryCache) GetStats(_ context.Context, userID uint64) (*ProfileStats, bool) {
	s, ok := c.stats.Get(userID)
	if !ok {
		metrics.RecordCacheMiss("stats")
		return nil, false
	}
	metrics.RecordCacheHit("stats")
	return &s, true
}

func (c *MemoryCache) SetStats(_ context.Context, userID uint64, stats *ProfileStats) {
	c.stats.Add(userID, *stats)
}

func (c *MemoryCache) GetSuggestions(_ context.Context, userID uint64) ([]common.UserSummary, bool) {
	users, ok := c.suggestions.Get(userID)
	if !ok {
		metrics.RecordCacheMiss("suggestions")
		return nil, false
	}
	metrics.RecordCacheHit("suggestions")
	out := make([]common.UserSummary, len(users))
	copy(out, users)
	return out, true
}

func (c *MemoryCache) SetSuggestions(_ context.Context, userID uint64, users []common.UserSummary) {
	stored := make([]common.UserSummary, len(users))
	copy(stored, users)
	c.suggestions.Add(userID, stored)
}

func (c *MemoryCache) Invalidate(_ context.Context, userIDs ...uint64) {
	for _, id := range userIDs {
		c.stats.Remove(id)
		c.suggestions.Remove(id)
	}
}
