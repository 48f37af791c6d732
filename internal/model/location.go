package model

// Location is a reverse-geocoding result. Unknown parts are nil.
type Location struct {
	Country     *string `json:"country"`
	CountryCode *string `json:"countryCode"`
	City        *string `json:"city"`
	Locality    *string `json:"locality"`
}

type LocationInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type CountryUpdate struct {
	ID      int64  `json:"id"`
	Country string `json:"country"`
}

type BackfillResult struct {
	Message      string          `json:"message"`
	UpdatedTrips []CountryUpdate `json:"updatedTrips"`
}
