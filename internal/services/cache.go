package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const trendCacheTTL = 5 * time.Minute

// TrendCache keeps computed weekly trends in redis for a short window.
// The service runs fine without redis: a nil client turns every method
// into a no-op miss.
type TrendCache struct {
	redis *redis.Client
}

func NewTrendCache(redisClient *redis.Client) *TrendCache {
	return &TrendCache{redis: redisClient}
}

func trendKey(userID string) string {
	return fmt.Sprintf("trend:%s", userID)
}

func (c *TrendCache) Get(ctx context.Context, userID string) (*TrendReport, bool) {
	if c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, trendKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var report TrendReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	return &report, true
}

func (c *TrendCache) Set(ctx context.Context, userID string, report *TrendReport) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	c.redis.Set(ctx, trendKey(userID), data, trendCacheTTL)
}

// Invalidate drops the cached trend after any write that changes the
// user's meal or exercise history.
func (c *TrendCache) Invalidate(ctx context.Context, userID string) {
	if c.redis == nil {
		return
	}
	c.redis.Del(ctx, trendKey(userID))
}
