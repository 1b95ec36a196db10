package models

// NavigateFunc is the host application's navigation callback.
type NavigateFunc func(page string, entityID string)

// Pages the widgets navigate to.
const (
	PageMyAppointments = "my-appointments"
	PageBusinessDetail = "business-detail"
)

// Navigation records a navigation requested through the callback.
type Navigation struct {
	Page     string `json:"page"`
	EntityID string `json:"entity_id,omitempty"`
}
