package response_models

type DayPlan struct {
	Day   int      `json:"day"`
	Items []string `json:"items"`
}

type Itinerary struct {
	ItineraryID     string          `json:"itineraryId,omitempty"`
	Summary         string          `json:"summary"`
	Flights         FlightEstimate  `json:"flights"`
	Hotels          HotelsSection   `json:"hotels"`
	DailyPlan       []DayPlan       `json:"dailyPlan"`
	EstimatedTotals EstimatedTotals `json:"estimatedTotals"`
	Train           *TrainEstimate  `json:"train,omitempty"`
}

type StoredItinerary struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt int64     `json:"created_at"`
	Document  Itinerary `json:"document"`
}
