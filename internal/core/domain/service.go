package domain

// Service is a catalog entry that appointments reference. The catalog is
// managed elsewhere; this core only reads it.
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration"`
	Price           float64 `json:"price"`
	Description     string  `json:"description,omitempty"`
	Type            string  `json:"service_type"`
}
