package report

import (
	"context"
	"encoding/json"
	"time"

	"pizzeria/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// cache is a read-through JSON cache over redis. A nil client disables it, and redis errors
// only ever cost a recomputation.
type cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func (c *cache) key(name string) string {
	return utils.ReportCachePrefix + name
}

func (c *cache) get(ctx context.Context, name string, dst any) bool {
	if c.client == nil || c.ttl <= 0 {
		return false
	}
	cached, err := c.client.Get(ctx, c.key(name)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("Report cache read failed", zap.String("key", name), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		c.logger.Warn("Discarding undecodable report cache entry", zap.String("key", name), zap.Error(err))
		return false
	}
	return true
}

func (c *cache) set(ctx context.Context, name string, v any) {
	if c.client == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(name), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Report cache write failed", zap.String("key", name), zap.Error(err))
	}
}
