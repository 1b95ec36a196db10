// File: services/geocode/cache.go
package geocode

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "geocode:"

// CachedGeocoder fronts another Geocoder with a Redis cache keyed by
// address. Cache trouble never fails a lookup; it falls through to the
// inner geocoder.
type CachedGeocoder struct {
	inner  Geocoder
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedGeocoder(inner Geocoder, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedGeocoder {
	return &CachedGeocoder{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (Result, error) {
	key := cacheKeyPrefix + address

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var res Result
		if jsonErr := json.Unmarshal([]byte(cached), &res); jsonErr == nil {
			return res, nil
		}
		c.logger.Warn("Discarding malformed geocode cache entry", zap.String("address", address))
	} else if err != redis.Nil {
		c.logger.Warn("Geocode cache read failed", zap.String("address", address), zap.Error(err))
	}

	res, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return Result{}, err
	}

	payload, err := json.Marshal(res)
	if err == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Warn("Geocode cache write failed", zap.String("address", address), zap.Error(setErr))
		}
	}
	return res, nil
}
