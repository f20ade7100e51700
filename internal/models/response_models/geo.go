package response_models

// GeoPoint is a resolved city location. Immutable once resolved; built per request.
type GeoPoint struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	CountryCode string  `json:"country_code,omitempty"`
	Formatted   string  `json:"formatted,omitempty"`
}

type CityCandidate struct {
	Name        string  `json:"name"`
	State       string  `json:"state,omitempty"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name,omitempty"`
}

type Airport struct {
	Name    string  `json:"name"`
	IATA    string  `json:"iata,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	PlaceID string  `json:"place_id,omitempty"`
}

type Attraction struct {
	Name            string   `json:"name"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
	PlaceID         string   `json:"place_id,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	Description     string   `json:"description,omitempty"`
	URL             string   `json:"url,omitempty"`
	OpeningHours    string   `json:"openingHours,omitempty"`
	BestTimeToVisit string   `json:"bestTimeToVisit,omitempty"`
}
