package models

// Business is a published business record as returned by the backend.
// This layer treats it as opaque and immutable.
type Business struct {
	ID              string   `json:"id"`
	OwnerID         string   `json:"owner_id,omitempty"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Address         string   `json:"address"`
	LogoURL         string   `json:"logo_url,omitempty"`
	Photos          []string `json:"photos,omitempty"`
	Categories      []string `json:"categories"`
	Status          string   `json:"status,omitempty"`
	AppointmentMode string   `json:"appointment_mode,omitempty"`
	AvgRating       float64  `json:"avg_rating,omitempty"`
	ReviewsCount    int      `json:"reviews_count,omitempty"`
}

// HasCategory reports whether the business is tagged with the given category.
func (b Business) HasCategory(name string) bool {
	for _, c := range b.Categories {
		if c == name {
			return true
		}
	}
	return false
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GeocodedPin associates a business with map coordinates. Pins are derived
// from the full catalog whenever it changes and are never persisted.
type GeocodedPin struct {
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Business Business `json:"business"`
}

// Viewport is the map camera position.
type Viewport struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`
}
