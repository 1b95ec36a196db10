// File: services/landing/pins.go
package landing

import (
	"context"
	"sync"

	"bookview/models"

	"go.uber.org/zap"
)

// resolvePins geocodes every business address concurrently. A failed lookup
// drops that business's pin and never aborts the batch; the function
// returns only after every lookup has settled.
func (p *Panel) resolvePins(ctx context.Context, businesses []models.Business) []models.GeocodedPin {
	results := make([]*models.GeocodedPin, len(businesses))

	var wg sync.WaitGroup
	for i, b := range businesses {
		wg.Add(1)
		go func(i int, b models.Business) {
			defer wg.Done()
			res, err := p.geocoder.Geocode(ctx, b.Address)
			if err != nil {
				p.logger.Warn("Dropping pin for business that failed to geocode",
					zap.String("businessId", b.ID), zap.String("address", b.Address), zap.Error(err))
				return
			}
			results[i] = &models.GeocodedPin{Lat: res.Lat, Lng: res.Lng, Business: b}
		}(i, b)
	}
	wg.Wait()

	pins := make([]models.GeocodedPin, 0, len(businesses))
	for _, pin := range results {
		if pin != nil {
			pins = append(pins, *pin)
		}
	}
	return pins
}

// visiblePins is the pure derivation of map pins from the visible subset.
func visiblePins(visible []models.Business, pins []models.GeocodedPin) []models.GeocodedPin {
	ids := make(map[string]struct{}, len(visible))
	for _, b := range visible {
		ids[b.ID] = struct{}{}
	}
	out := make([]models.GeocodedPin, 0, len(pins))
	for _, pin := range pins {
		if _, ok := ids[pin.Business.ID]; ok {
			out = append(out, pin)
		}
	}
	return out
}

func findPin(pins []models.GeocodedPin, businessID string) (models.GeocodedPin, bool) {
	for _, pin := range pins {
		if pin.Business.ID == businessID {
			return pin, true
		}
	}
	return models.GeocodedPin{}, false
}
