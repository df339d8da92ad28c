package domain

import "time"

// Vehicle is one inventory record. Records are created only by the seeding
// command; the service itself never mutates them.
type Vehicle struct {
	ID              string    `json:"id"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	YearManufacture int       `json:"year_manufacture"`
	YearModel       int       `json:"year_model"`
	EngineSize      float64   `json:"engine_size"`
	FuelType        string    `json:"fuel_type"`
	Color           string    `json:"color"`
	Mileage         int       `json:"mileage"`
	Doors           int       `json:"doors"`
	Transmission    string    `json:"transmission"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
}

// SearchHit is a vehicle together with the sort-key data the pagination
// cursor needs. Rank is zero when the search had no free-text query.
type SearchHit struct {
	Vehicle
	Rank float64 `json:"-"`
}

// SearchResult is one page of ranked vehicles.
type SearchResult struct {
	Vehicles      []Vehicle `json:"records"`
	NextPageToken string    `json:"next_page_token,omitempty"`
}

// RangeResult holds the extrema of one numeric field.
type RangeResult struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
