package utils

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Backend   bool      `json:"backend"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(cacheClient *redis.Client, backendBaseURL string) {
	httpClient := &http.Client{Timeout: 5 * time.Second}

	check := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		redisHealthy := cacheClient.Ping(ctx).Err() == nil

		backendHealthy := false
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, backendBaseURL+"/categories/", nil)
		if err == nil {
			resp, err := httpClient.Do(req)
			if err == nil {
				resp.Body.Close()
				backendHealthy = resp.StatusCode < 500
			}
		}

		healthMu.Lock()
		currentHealth = HealthStatus{
			Backend:   backendHealthy,
			Redis:     redisHealthy,
			CheckedAt: time.Now(),
		}
		healthMu.Unlock()
	}

	go func() {
		check()
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check()
		}
	}()
}
