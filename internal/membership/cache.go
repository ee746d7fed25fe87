package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
)

// RedisCache caches tier lookups in front of another Client. Cache
// failures fall through to the underlying client; a stale tier only
// affects window length, never the snapshot stored on a booking.
type RedisCache struct {
	rdb    *redis.Client
	next   Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(rdb *redis.Client, next Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{rdb: rdb, next: next, ttl: ttl, logger: logger}
}

func (c *RedisCache) GetTier(ctx context.Context, memberID uint) (tier.Capability, error) {
	key := fmt.Sprintf("membership:tier:%d", memberID)

	if raw, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var cap tier.Capability
		if err := json.Unmarshal([]byte(raw), &cap); err == nil {
			return cap, nil
		}
	}

	cap, err := c.next.GetTier(ctx, memberID)
	if err != nil {
		return tier.Capability{}, err
	}

	if b, err := json.Marshal(cap); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.logger.Warn("tier cache write failed", zap.Uint("member_id", memberID), zap.Error(err))
		}
	}

	return cap, nil
}

// Invalidate drops a cached tier, for use when the membership
// collaborator reports a change.
func (c *RedisCache) Invalidate(ctx context.Context, memberID uint) {
	key := fmt.Sprintf("membership:tier:%d", memberID)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("tier cache invalidate failed", zap.Uint("member_id", memberID), zap.Error(err))
	}
}

var _ Client = (*RedisCache)(nil)
