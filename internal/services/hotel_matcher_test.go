package services_test

import (
	"testing"

	"tripweaver/internal/models/response_models"
	"tripweaver/internal/services"
)

func dayPlan(day int, items ...string) response_models.DayPlan {
	return response_models.DayPlan{Day: day, Items: items}
}

func TestExtractMentionedCities(t *testing.T) {
	matcher := services.NewHotelMatcherService()

	plan := []response_models.DayPlan{
		dayPlan(1, "Morning: arrive in Jaipur and check-in at your hotel."),
		dayPlan(2, "Travel to Pushkar for the famous camel fair and lake ghats."),
		dayPlan(3, "Visit Amber Fort in the morning, then return."),
	}

	cities := matcher.ExtractMentionedCities(plan, "Jaipur, IN")

	if containsCity(cities, "Jaipur") {
		t.Error("destination city should not be re-listed")
	}
	if !containsCity(cities, "Pushkar") {
		t.Errorf("explicit 'travel to' city missing: %v", cities)
	}
	if !containsCity(cities, "Amber") {
		t.Errorf("landmark-prefixed city missing: %v", cities)
	}
}

func TestExtractMentionedCitiesIgnoresTimeWords(t *testing.T) {
	matcher := services.NewHotelMatcherService()

	plan := []response_models.DayPlan{
		dayPlan(1, "Visit Morning markets, then explore Evening bazaars."),
	}

	cities := matcher.ExtractMentionedCities(plan, "Jaipur")
	for _, c := range cities {
		if c == "Morning" || c == "Evening" {
			t.Errorf("time-of-day word extracted as a city: %v", cities)
		}
	}
}

func TestMatchHotelsToDaysAirportFalsePositive(t *testing.T) {
	matcher := services.NewHotelMatcherService()

	hotelsByCity := map[string][]response_models.Hotel{
		"Jammu": {{Name: "Jammu Residency"}},
	}
	plan := []response_models.DayPlan{
		dayPlan(1, "Depart from Jammu Airport in the morning for your onward flight."),
	}

	byDay := matcher.MatchHotelsToDays(plan, []string{"Jammu"}, hotelsByCity, "Gangtok")
	if _, ok := byDay[1]; ok {
		t.Error("an airport mention alone should not assign hotels to the day")
	}
}

func TestMatchHotelsToDaysCheckInDefaultsToDestination(t *testing.T) {
	matcher := services.NewHotelMatcherService()

	hotelsByCity := map[string][]response_models.Hotel{
		"Gangtok": {
			{Name: "Summit Residency"},
			{Name: "Hotel Tashi Delek"},
			{Name: "Third Hotel"},
		},
	}
	plan := []response_models.DayPlan{
		dayPlan(1, "Arrive and complete hotel check-in before lunch."),
	}

	byDay := matcher.MatchHotelsToDays(plan, []string{}, hotelsByCity, "Gangtok, IN")
	hotels, ok := byDay[1]
	if !ok {
		t.Fatal("check-in day should get destination hotels")
	}
	if len(hotels) != 2 {
		t.Errorf("expected top 2 hotels per city, got %d", len(hotels))
	}
	for _, h := range hotels {
		if h.Day != 1 {
			t.Errorf("hotel not tagged with day: %+v", h)
		}
		if h.City != "Gangtok" {
			t.Errorf("hotel not tagged with city: %+v", h)
		}
	}
}

func TestMatchHotelsToDaysNamedHotelFirst(t *testing.T) {
	matcher := services.NewHotelMatcherService()

	hotelsByCity := map[string][]response_models.Hotel{
		"Jaipur": {
			{Name: "Generic Stay"},
			{Name: "Second Stay"},
			{Name: "Pearl Palace Heritage"},
		},
	}
	plan := []response_models.DayPlan{
		dayPlan(1, "Explore Jaipur old town, then stay at Pearl Palace for the night."),
	}

	byDay := matcher.MatchHotelsToDays(plan, []string{"Jaipur"}, hotelsByCity, "Jaipur")
	hotels, ok := byDay[1]
	if !ok || len(hotels) == 0 {
		t.Fatal("expected hotels for day 1")
	}
	if hotels[0].Name != "Pearl Palace Heritage" {
		t.Errorf("hotel named in the plan text should come first, got %q", hotels[0].Name)
	}
}

func TestMatchHotelsToDaysNoDuplicates(t *testing.T) {
	matcher := services.NewHotelMatcherService()

	hotelsByCity := map[string][]response_models.Hotel{
		"Jaipur": {{Name: "Pearl Palace Heritage"}},
	}
	plan := []response_models.DayPlan{
		dayPlan(1, "Explore Jaipur, stay at Pearl Palace, enjoy dinner at Pearl Palace rooftop."),
	}

	byDay := matcher.MatchHotelsToDays(plan, []string{"Jaipur"}, hotelsByCity, "Jaipur")
	hotels := byDay[1]
	seen := map[string]int{}
	for _, h := range hotels {
		seen[h.Name]++
	}
	for name, count := range seen {
		if count > 1 {
			t.Errorf("hotel %q assigned %d times to the same day", name, count)
		}
	}
}

func containsCity(cities []string, city string) bool {
	for _, c := range cities {
		if c == city {
			return true
		}
	}
	return false
}
