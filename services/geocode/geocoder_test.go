// File: services/geocode/geocoder_test.go
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGoogleGeocoder(t *testing.T, handler http.HandlerFunc) *GoogleGeocoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g := NewGoogleGeocoder("test-key", zap.NewNop())
	g.baseURL = srv.URL
	return g
}

func googleOK(lat, lng float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"results": []map[string]interface{}{
				{"geometry": map[string]interface{}{
					"location": map[string]float64{"lat": lat, "lng": lng},
				}},
			},
		})
	}
}

func TestGoogleGeocoder_ResolvesAddress(t *testing.T) {
	var gotQuery string
	g := newTestGoogleGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("address")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		googleOK(40.4168, -3.7038)(w, r)
	})

	res, err := g.Geocode(context.Background(), "Calle Mayor 1, Madrid")
	require.NoError(t, err)
	assert.Equal(t, "Calle Mayor 1, Madrid", gotQuery)
	assert.InDelta(t, 40.4168, res.Lat, 1e-9)
	assert.InDelta(t, -3.7038, res.Lng, 1e-9)
}

func TestGoogleGeocoder_NoResults(t *testing.T) {
	g := newTestGoogleGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "ZERO_RESULTS",
			"results": []interface{}{},
		})
	})

	_, err := g.Geocode(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestGoogleGeocoder_NonOKStatusCode(t *testing.T) {
	g := newTestGoogleGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := g.Geocode(context.Background(), "somewhere")
	assert.Error(t, err)
}

// countingGeocoder counts lookups so cache hits are observable.
type countingGeocoder struct {
	mu    sync.Mutex
	calls int
	res   Result
	err   error
}

func (c *countingGeocoder) Geocode(ctx context.Context, address string) (Result, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.res, c.err
}

func newTestCache(t *testing.T, inner Geocoder) *CachedGeocoder {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedGeocoder(inner, client, time.Hour, zap.NewNop())
}

func TestCachedGeocoder_SecondLookupHitsCache(t *testing.T) {
	inner := &countingGeocoder{res: Result{Lat: 1.5, Lng: 2.5}}
	cached := newTestCache(t, inner)

	first, err := cached.Geocode(context.Background(), "1 Alpha St")
	require.NoError(t, err)

	second, err := cached.Geocode(context.Background(), "1 Alpha St")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedGeocoder_FailuresAreNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("provider down")}
	cached := newTestCache(t, inner)

	_, err := cached.Geocode(context.Background(), "1 Alpha St")
	require.Error(t, err)

	_, err = cached.Geocode(context.Background(), "1 Alpha St")
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_FallsThroughOnCacheTrouble(t *testing.T) {
	inner := &countingGeocoder{res: Result{Lat: 1, Lng: 2}}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cached := NewCachedGeocoder(inner, client, time.Hour, zap.NewNop())

	mr.Close()

	res, err := cached.Geocode(context.Background(), "1 Alpha St")
	require.NoError(t, err, "cache trouble must not fail the lookup")
	assert.Equal(t, Result{Lat: 1, Lng: 2}, res)
	assert.Equal(t, 1, inner.calls)
}
