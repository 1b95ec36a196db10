// File: services/geocode/geocoder.go
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// ErrNoResults is returned when the provider cannot resolve an address.
var ErrNoResults = errors.New("geocode: no results for address")

// Result is a resolved map coordinate.
type Result struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocoder resolves a free-text address to coordinates. The provider is
// consumed as a black box; callers tolerate individual failures.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Result, error)
}

// googleResponse mirrors the fields we read from the Google Geocoding API.
type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleGeocoder resolves addresses through the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGoogleGeocoder(apiKey string, logger *zap.Logger) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:     apiKey,
		baseURL:    googleGeocodeURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (Result, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("Geocoding API returned non-OK status",
			zap.String("address", address), zap.Int("status", resp.StatusCode))
		return Result{}, errors.New("geocode: provider returned non-OK status")
	}

	var decoded googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, err
	}
	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return Result{}, ErrNoResults
	}

	loc := decoded.Results[0].Geometry.Location
	return Result{Lat: loc.Lat, Lng: loc.Lng}, nil
}
