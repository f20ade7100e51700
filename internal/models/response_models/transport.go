package response_models

// RouteEstimate is a point-to-point routing result. Available is false when it was
// produced by the haversine fallback rather than the routing provider.
type RouteEstimate struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	Available       bool    `json:"available"`
	Note            string  `json:"note,omitempty"`
}

type TransportOption struct {
	Mode            string  `json:"mode"`
	Description     string  `json:"description"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	Available       bool    `json:"available"`
	Note            string  `json:"note,omitempty"`
}

// GroundTransport holds the airport-to-city options offered when the destination is
// far from its airport.
type GroundTransport struct {
	Taxi       TransportOption `json:"taxi"`
	Bus        TransportOption `json:"bus"`
	SharedTaxi TransportOption `json:"shared_taxi"`
}
