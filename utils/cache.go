// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"bookview/config"

	"github.com/go-redis/redis/v8"
)

// GeocodeCacheClient caches third-party geocoding lookups keyed by address.
var GeocodeCacheClient *redis.Client

// InitGeocodeCache initializes the Redis client backing the geocode cache.
func InitGeocodeCache() {
	GeocodeCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisGeocodeDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := GeocodeCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Geocode Cache): %v", err)
	}
}

// GetGeocodeCacheClient returns the geocode cache client.
func GetGeocodeCacheClient() *redis.Client {
	if GeocodeCacheClient == nil {
		InitGeocodeCache()
	}
	return GeocodeCacheClient
}
