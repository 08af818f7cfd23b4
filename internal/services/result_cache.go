package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/types"
	"github.com/pendulab/pendulum-backend/internal/utils"
)

// ResultCache is a read-through cache for hydrated result payloads. Cache
// failures are logged and swallowed; the store stays authoritative.
type ResultCache interface {
	Get(ctx context.Context, resultID uuid.UUID) (*types.Result, bool)
	Set(ctx context.Context, result *types.Result)
	Invalidate(ctx context.Context, resultID uuid.UUID)
}

type redisResultCache struct {
	log *logger.Logger
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisResultCache(log *logger.Logger) (ResultCache, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	// RESULT_CACHE_TTL is seconds.
	ttl := time.Duration(utils.GetEnvAsInt("RESULT_CACHE_TTL", 300, log)) * time.Second

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisResultCache{
		log: log.With("service", "RedisResultCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func resultCacheKey(resultID uuid.UUID) string {
	return "result:" + resultID.String()
}

func (c *redisResultCache) Get(ctx context.Context, resultID uuid.UUID) (*types.Result, bool) {
	raw, err := c.rdb.Get(ctx, resultCacheKey(resultID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Cache read failed", "result_id", resultID, "error", err)
		}
		return nil, false
	}
	var result types.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		c.log.Warn("Cache payload corrupt, dropping", "result_id", resultID, "error", err)
		_ = c.rdb.Del(ctx, resultCacheKey(resultID)).Err()
		return nil, false
	}
	return &result, true
}

func (c *redisResultCache) Set(ctx context.Context, result *types.Result) {
	raw, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("Cache marshal failed", "result_id", result.ID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, resultCacheKey(result.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", "result_id", result.ID, "error", err)
	}
}

func (c *redisResultCache) Invalidate(ctx context.Context, resultID uuid.UUID) {
	if err := c.rdb.Del(ctx, resultCacheKey(resultID)).Err(); err != nil {
		c.log.Warn("Cache invalidate failed", "result_id", resultID, "error", err)
	}
}
