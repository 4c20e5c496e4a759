package models

// Suggestion is one autocomplete entry, in provider order.
type Suggestion struct {
	Name      string  `json:"name" example:"London, United Kingdom"`
	Latitude  float64 `json:"latitude" example:"51.50853"`
	Longitude float64 `json:"longitude" example:"-0.12574"`
}
