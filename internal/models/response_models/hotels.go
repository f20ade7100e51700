package response_models

// BookingLinks are search deep-links, not reservations. The hotel link combines hotel
// and city so the target site can match without a login prompt; the city link always
// works even when the hotel itself is missing from the booking site.
type BookingLinks struct {
	Hotel string `json:"booking_hotel"`
	City  string `json:"booking_city"`
}

type Hotel struct {
	Name         string        `json:"name"`
	Address      string        `json:"address,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
	RatingCount  int           `json:"user_ratings_total,omitempty"`
	PriceLevel   *int          `json:"price_level,omitempty"`
	Lat          float64       `json:"lat"`
	Lng          float64       `json:"lng"`
	PlaceID      string        `json:"place_id"`
	URL          string        `json:"url,omitempty"`
	Stars        *float64      `json:"stars,omitempty"`
	BookingLinks *BookingLinks `json:"booking_links,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	City         string        `json:"city,omitempty"`
	Day          int           `json:"day,omitempty"`
}

// HotelsSection is the composite hotel view on the final itinerary: the flat top list
// plus the per-city and per-day groupings the frontend renders.
type HotelsSection struct {
	Hotels          []Hotel           `json:"hotels"`
	HotelsByCity    map[string][]Hotel `json:"hotels_by_city,omitempty"`
	HotelsByDay     map[int][]Hotel    `json:"hotels_by_day,omitempty"`
	Count           int               `json:"count"`
	CitiesMentioned []string          `json:"cities_mentioned,omitempty"`
	CityLinks       map[string]string `json:"city_links,omitempty"`
	Note            string            `json:"note,omitempty"`
}
