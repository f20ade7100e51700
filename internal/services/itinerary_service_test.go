package services_test

import (
	"context"
	"strings"
	"testing"

	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/services"
)

type fakeLLM struct {
	responses []string
	calls     int
}

func (f *fakeLLM) GenerateItineraryJSON(ctx context.Context, prompt string) (string, error) {
	resp := f.responses[f.calls%len(f.responses)]
	f.calls++
	return resp, nil
}

func (f *fakeLLM) Close() error { return nil }

func floatPtr(v float64) *float64 { return &v }

func planInput(numDays, numPeople int) services.GenerationInput {
	return services.GenerationInput{
		Request: request_models.PlanTripRequest{
			OriginCity:      "New Delhi, IN",
			DestinationCity: "Jaipur, IN",
			NumDays:         numDays,
			NumPeople:       numPeople,
		},
		OriginGeo:      &response_models.GeoPoint{Lat: 28.61, Lng: 77.21, CountryCode: "in"},
		DestinationGeo: &response_models.GeoPoint{Lat: 26.91, Lng: 75.79, CountryCode: "in"},
		FlightEstimate: response_models.FlightEstimate{
			RoundTripPerPerson: floatPtr(9000.0),
			Currency:           "INR",
		},
		HotelEstimate: response_models.HotelEstimate{PerNight: 7000.0, Currency: "INR"},
		OtherCosts: response_models.OtherCostsEstimate{
			ActivitiesPerDayPerPerson:        1200.0,
			FoodTransportMiscPerDayPerPerson: 1500.0,
			Currency:                         "INR",
		},
	}
}

const validTwoDayPlan = `{
  "summary": "A two day escape to the Pink City.",
  "flights": {"currency": "INR"},
  "hotels": [],
  "dailyPlan": [
    {"day": 1, "items": ["Morning: arrive and check-in at hotel near MI Road."]},
    {"day": 2, "items": ["Morning: visit Amer Fort, 30 min drive from the city."]}
  ],
  "estimatedTotals": {}
}`

func TestGenerateItineraryAcceptsValidPlan(t *testing.T) {
	llm := &fakeLLM{responses: []string{validTwoDayPlan}}
	svc := services.NewItineraryService(llm)

	it, err := svc.GenerateItinerary(context.Background(), planInput(2, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if llm.calls != 1 {
		t.Errorf("valid plan should be accepted on first attempt, got %d calls", llm.calls)
	}
	if len(it.DailyPlan) != 2 {
		t.Fatalf("expected 2 days, got %d", len(it.DailyPlan))
	}
	if it.DailyPlan[0].Day != 1 || it.DailyPlan[1].Day != 2 {
		t.Error("days should be ordered 1..N")
	}
	if it.Summary != "A two day escape to the Pink City." {
		t.Errorf("summary lost: %q", it.Summary)
	}
}

func TestGenerateItineraryRetriesThenRepairs(t *testing.T) {
	llm := &fakeLLM{responses: []string{"this is not json at all"}}
	svc := services.NewItineraryService(llm)

	it, err := svc.GenerateItinerary(context.Background(), planInput(3, 2))
	if err != nil {
		t.Fatalf("repair should succeed even when the model never does: %v", err)
	}

	if llm.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", llm.calls)
	}
	if len(it.DailyPlan) != 3 {
		t.Fatalf("repaired plan must have exactly 3 days, got %d", len(it.DailyPlan))
	}
	for i, day := range it.DailyPlan {
		if day.Day != i+1 {
			t.Errorf("day %d out of order: %d", i, day.Day)
		}
		if len(day.Items) == 0 {
			t.Errorf("day %d has no items", day.Day)
		}
		if !strings.Contains(day.Items[0], "try regenerating") {
			t.Errorf("day %d should carry the placeholder item, got %q", day.Day, day.Items[0])
		}
	}
}

func TestGenerateItineraryStripsCodeFences(t *testing.T) {
	llm := &fakeLLM{responses: []string{"```json\n" + validTwoDayPlan + "\n```"}}
	svc := services.NewItineraryService(llm)

	it, err := svc.GenerateItinerary(context.Background(), planInput(2, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(it.DailyPlan) != 2 || strings.Contains(it.DailyPlan[0].Items[0], "regenerating") {
		t.Error("fenced JSON should parse cleanly")
	}
}

func TestGenerateItineraryPadsMissingDays(t *testing.T) {
	// Three days requested, model delivers two.
	llm := &fakeLLM{responses: []string{validTwoDayPlan}}
	svc := services.NewItineraryService(llm)

	it, err := svc.GenerateItinerary(context.Background(), planInput(3, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(it.DailyPlan) != 3 {
		t.Fatalf("expected 3 days, got %d", len(it.DailyPlan))
	}
	if !strings.Contains(it.DailyPlan[2].Items[0], "Day 3") {
		t.Errorf("padded day should carry a placeholder, got %q", it.DailyPlan[2].Items[0])
	}
}

func TestGenerateItineraryMergesHotelDetails(t *testing.T) {
	aiPlan := `{
  "summary": "Trip with a hotel pick.",
  "flights": {"currency": "INR"},
  "hotels": [{"name": "Pearl Palace", "lat": 26.9, "lng": 75.8, "place_id": "x"}],
  "dailyPlan": [{"day": 1, "items": ["Check-in at Pearl Palace."]}],
  "estimatedTotals": {}
}`
	llm := &fakeLLM{responses: []string{aiPlan}}
	svc := services.NewItineraryService(llm)

	input := planInput(1, 2)
	input.Hotels = []response_models.Hotel{
		{
			Name:  "pearl palace",
			Lat:   26.9,
			Lng:   75.8,
			Phone: "+91 141 123",
			BookingLinks: &response_models.BookingLinks{
				Hotel: "https://www.booking.com/search.html?ss=Pearl+Palace+Jaipur",
				City:  "https://www.booking.com/search.html?ss=Jaipur",
			},
			Stars:       floatPtr(3.0),
			Rating:      floatPtr(4.5),
			RatingCount: 1200,
		},
	}

	it, err := svc.GenerateItinerary(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(it.Hotels.Hotels) != 1 {
		t.Fatalf("expected 1 hotel, got %d", len(it.Hotels.Hotels))
	}
	h := it.Hotels.Hotels[0]
	if h.BookingLinks == nil || h.BookingLinks.City == "" {
		t.Error("booking links from the search result should survive the merge")
	}
	if h.Phone != "+91 141 123" {
		t.Errorf("phone lost in merge: %q", h.Phone)
	}
	if h.Rating == nil || *h.Rating != 4.5 {
		t.Error("rating lost in merge")
	}
}

func TestGenerateItineraryHotelCap(t *testing.T) {
	var names []string
	for _, n := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		names = append(names, `{"name": "Hotel `+n+`", "lat": 1, "lng": 1, "place_id": "p`+n+`"}`)
	}
	aiPlan := `{
  "summary": "Many hotels.",
  "flights": {"currency": "INR"},
  "hotels": [` + strings.Join(names, ",") + `],
  "dailyPlan": [{"day": 1, "items": ["Rest day."]}],
  "estimatedTotals": {}
}`
	llm := &fakeLLM{responses: []string{aiPlan}}
	svc := services.NewItineraryService(llm)

	it, err := svc.GenerateItinerary(context.Background(), planInput(1, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(it.Hotels.Hotels) > 6 {
		t.Errorf("hotel list should be capped at 6, got %d", len(it.Hotels.Hotels))
	}
}

func TestGenerateItineraryTotalsFlights(t *testing.T) {
	llm := &fakeLLM{responses: []string{validTwoDayPlan}}
	svc := services.NewItineraryService(llm)

	it, err := svc.GenerateItinerary(context.Background(), planInput(2, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals := it.EstimatedTotals
	if totals.Flights != 18000.0 {
		t.Errorf("flights total: got %v, want 18000", totals.Flights)
	}
	if totals.Hotels != 14000.0 {
		t.Errorf("hotels total: got %v, want 14000", totals.Hotels)
	}
	if totals.Activities != 4800.0 {
		t.Errorf("activities total: got %v, want 4800", totals.Activities)
	}
	if totals.FoodTransportMisc != 6000.0 {
		t.Errorf("food/misc total: got %v, want 6000", totals.FoodTransportMisc)
	}
	want := 18000.0 + 14000.0 + 4800.0 + 6000.0
	if totals.GrandTotal != want {
		t.Errorf("grand total: got %v, want %v", totals.GrandTotal, want)
	}
}

func TestGenerateItineraryTrainReplacesFlights(t *testing.T) {
	llm := &fakeLLM{responses: []string{validTwoDayPlan}}
	svc := services.NewItineraryService(llm)

	input := planInput(2, 2)
	input.TrainEstimate = &response_models.TrainEstimate{
		Available:  true,
		DistanceKm: 237.1,
		Classes: map[string]response_models.TrainClass{
			"SL": {FarePerPerson: 200.0, Currency: "INR"},
			"3A": {FarePerPerson: 600.0, Currency: "INR"},
		},
	}

	it, err := svc.GenerateItinerary(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals := it.EstimatedTotals
	if totals.Flights != 0.0 {
		t.Errorf("train trips should zero out flights, got %v", totals.Flights)
	}
	if totals.Train != 1200.0 {
		t.Errorf("train total should use the 3A fare: got %v, want 1200", totals.Train)
	}
	if it.Train == nil || !it.Train.Available {
		t.Error("train estimate should be attached to the itinerary")
	}
}
