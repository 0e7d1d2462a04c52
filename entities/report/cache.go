package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	CACHE_KEY_PREFIX  = "funnel:report"
	CACHE_KEY_DEFAULT = "default"
	CACHE_KEY_ALL     = "all"
)

// Cache stores encoded report payloads. Misses and backend errors look the
// same to callers.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

type noCache struct{}

func (noCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noCache) Set(context.Context, string, []byte)        {}

type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger zerolog.Logger
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration, logger zerolog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "report_cache").Logger(),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("report cache read failed")
		}
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if c.ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}

// CacheKey builds funnel:report:<type>:<from>:<until>:<source>:<model>.
// Empty parts are replaced so that keys never contain empty segments. Callers
// pass an already normalized model.
func CacheKey(reportType, from, until string, sourceID int64, model string) string {
	source := CACHE_KEY_ALL
	if sourceID > 0 {
		source = fmt.Sprintf("%d", sourceID)
	}
	return strings.Join([]string{
		CACHE_KEY_PREFIX,
		reportType,
		orDefault(from),
		orDefault(until),
		source,
		orDefault(model),
	}, ":")
}

func orDefault(part string) string {
	part = strings.TrimSpace(part)
	if part == "" {
		return CACHE_KEY_DEFAULT
	}
	return part
}
