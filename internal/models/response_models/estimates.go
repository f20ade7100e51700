package response_models

type FlightEstimate struct {
	OriginAirport      string   `json:"originAirport,omitempty"`
	DestinationAirport string   `json:"destinationAirport,omitempty"`
	RoundTripPerPerson *float64 `json:"estimatedRoundTripPerPerson,omitempty"`
	Currency           string   `json:"currency"`
	BookingLink        string   `json:"skyscanner_link,omitempty"`
}

type HotelEstimate struct {
	PerNight float64 `json:"estimatedPerNight"`
	Currency string  `json:"currency"`
}

type OtherCostsEstimate struct {
	ActivitiesPerDayPerPerson        float64 `json:"activitiesPerDayPerPerson"`
	FoodTransportMiscPerDayPerPerson float64 `json:"foodTransportMiscPerDayPerPerson"`
	Currency                         string  `json:"currency"`
}

type TrainClass struct {
	FarePerPerson float64 `json:"estFarePerPerson"`
	DurationHours float64 `json:"estDurationHours"`
	Currency      string  `json:"currency"`
	Description   string  `json:"description"`
}

type TrainEstimate struct {
	Available  bool                  `json:"available"`
	DistanceKm float64               `json:"distance_km,omitempty"`
	Classes    map[string]TrainClass `json:"classes"`
	Note       string                `json:"note,omitempty"`
}

type EstimatedTotals struct {
	Flights           float64 `json:"flights"`
	Train             float64 `json:"train"`
	Hotels            float64 `json:"hotels"`
	Activities        float64 `json:"activities"`
	FoodTransportMisc float64 `json:"foodTransportMisc"`
	GrandTotal        float64 `json:"grandTotal"`
	Currency          string  `json:"currency"`
}
