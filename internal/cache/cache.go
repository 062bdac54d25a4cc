// Package cache holds the short-lived profile statistics and suggestion lists.
package cache

import (
	"context"
	"fmt"
	"time"

	"socialhub/internal/common"
)

// ProfileStats are the counters shown on a profile page.
type ProfileStats struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// StatsCache stores per-user stats and follow suggestions for a bounded time.
// Misses are reported with ok=false, not an error.
type StatsCache interface {
	GetStats(ctx context.Context, userID uint64) (*ProfileStats, bool)
	SetStats(ctx context.Context, userID uint64, stats *ProfileStats)
	GetSuggestions(ctx context.Context, userID uint64) ([]common.UserSummary, bool)
	SetSuggestions(ctx context.Context, userID uint64, users []common.UserSummary)
	// Invalidate drops every cached entry for the given users.
	Invalidate(ctx context.Context, userIDs ...uint64)
}

func statsKey(userID uint64) string {
	return fmt.Sprintf("socialhub:stats:%d", userID)
}

func suggestionsKey(userID uint64) string {
	return fmt.Sprintf("socialhub:suggestions:%d", userID)
}

const defaultTTL = 5 * time.Minute
