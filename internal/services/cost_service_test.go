package services_test

import (
	"math"
	"testing"

	"tripweaver/internal/models/response_models"
	"tripweaver/internal/services"
)

func airportAt(name, iata string, lat, lng float64) *response_models.Airport {
	return &response_models.Airport{Name: name, IATA: iata, Lat: lat, Lng: lng}
}

func TestEstimateFlightsFloor(t *testing.T) {
	costs := services.NewCostService()

	// Delhi and Jaipur airports are ~240km apart; the per-km model lands
	// under the floor so the floor applies.
	est := costs.EstimateFlights(
		airportAt("Indira Gandhi International Airport", "DEL", 28.5562, 77.1000),
		airportAt("Jaipur International Airport", "JAI", 26.8242, 75.8122),
		"New Delhi, IN", "Jaipur, IN",
	)

	if est.RoundTripPerPerson == nil {
		t.Fatal("expected a fare estimate")
	}
	if *est.RoundTripPerPerson != 9000.0 {
		t.Errorf("short hop should hit the fare floor, got %v", *est.RoundTripPerPerson)
	}
	if est.BookingLink != "https://www.skyscanner.co.in/transport/flights/DEL/JAI/" {
		t.Errorf("unexpected booking link %q", est.BookingLink)
	}
}

func TestEstimateFlightsScalesWithDistance(t *testing.T) {
	costs := services.NewCostService()

	short := costs.EstimateFlights(
		airportAt("A", "AAA", 28.0, 77.0),
		airportAt("B", "BBB", 13.0, 80.0),
		"", "",
	)
	long := costs.EstimateFlights(
		airportAt("A", "AAA", 28.0, 77.0),
		airportAt("C", "CCC", 13.7, 100.5),
		"", "",
	)

	if *long.RoundTripPerPerson <= *short.RoundTripPerPerson {
		t.Errorf("longer route should cost more: short=%v long=%v", *short.RoundTripPerPerson, *long.RoundTripPerPerson)
	}
}

func TestEstimateFlightsMissingAirport(t *testing.T) {
	costs := services.NewCostService()

	est := costs.EstimateFlights(nil, airportAt("B", "BBB", 13.0, 80.0), "", "")
	if est.RoundTripPerPerson != nil {
		t.Error("no origin airport should give no fare")
	}
	if est.Currency == "" {
		t.Error("currency should still be set")
	}
}

func intPtr(v int) *int { return &v }

func TestEstimateHotelsMedianLevel(t *testing.T) {
	costs := services.NewCostService()

	hotels := []response_models.Hotel{
		{Name: "a", PriceLevel: intPtr(1)},
		{Name: "b", PriceLevel: intPtr(2)},
		{Name: "c", PriceLevel: intPtr(4)},
	}

	est := costs.EstimateHotels(hotels, 2)
	if est.PerNight != 7000.0 {
		t.Errorf("median level 2 should map to 7000, got %v", est.PerNight)
	}
}

func TestEstimateHotelsFallbackAndScaling(t *testing.T) {
	costs := services.NewCostService()

	est := costs.EstimateHotels(nil, 2)
	if est.PerNight != 7000.0 {
		t.Errorf("no price levels should fall back to 7000, got %v", est.PerNight)
	}

	est = costs.EstimateHotels(nil, 4)
	if est.PerNight != 14000.0 {
		t.Errorf("four people should double the nightly rate, got %v", est.PerNight)
	}

	est = costs.EstimateHotels(nil, 1)
	if est.PerNight != 7000.0 {
		t.Errorf("one person should not discount below the two-person rate, got %v", est.PerNight)
	}
}

func TestDeriveCityPriceLevel(t *testing.T) {
	costs := services.NewCostService()

	cases := []struct {
		levels []int
		want   int
	}{
		{nil, 2},
		{[]int{4, 4, 3}, 4},
		{[]int{3, 3, 2}, 3},
		{[]int{2, 2, 1}, 2},
		{[]int{1, 1, 1}, 1},
		{[]int{0, 0, 1}, 0},
	}

	for _, tc := range cases {
		hotels := make([]response_models.Hotel, len(tc.levels))
		for i, l := range tc.levels {
			hotels[i] = response_models.Hotel{PriceLevel: intPtr(l)}
		}
		if got := costs.DeriveCityPriceLevel(hotels); got != tc.want {
			t.Errorf("levels %v: got %d, want %d", tc.levels, got, tc.want)
		}
	}
}

func TestEstimateOtherCostsBands(t *testing.T) {
	costs := services.NewCostService()

	est := costs.EstimateOtherCosts(0)
	if est.ActivitiesPerDayPerPerson != 400.0 || est.FoodTransportMiscPerDayPerPerson != 600.0 {
		t.Errorf("level 0 band wrong: %+v", est)
	}

	est = costs.EstimateOtherCosts(99)
	if est.ActivitiesPerDayPerPerson != 1200.0 || est.FoodTransportMiscPerDayPerPerson != 1500.0 {
		t.Errorf("unknown level should use the mid band: %+v", est)
	}
}

func TestEstimateTrainClasses(t *testing.T) {
	costs := services.NewCostService()

	origin := &response_models.GeoPoint{Lat: 28.6139, Lng: 77.2090}      // Delhi
	destination := &response_models.GeoPoint{Lat: 26.9124, Lng: 75.7873} // Jaipur

	est := costs.EstimateTrain(origin, destination)
	if !est.Available {
		t.Fatal("train should be available")
	}
	if len(est.Classes) != 4 {
		t.Fatalf("expected 4 classes, got %d", len(est.Classes))
	}

	sl, threeA, twoA, oneA := est.Classes["SL"], est.Classes["3A"], est.Classes["2A"], est.Classes["1A"]
	if !(sl.FarePerPerson < threeA.FarePerPerson && threeA.FarePerPerson < twoA.FarePerPerson && twoA.FarePerPerson < oneA.FarePerPerson) {
		t.Errorf("class fares should be strictly ordered: %v %v %v %v", sl.FarePerPerson, threeA.FarePerPerson, twoA.FarePerPerson, oneA.FarePerPerson)
	}

	wantDuration := math.Round((est.DistanceKm/55.0+0.5)*10) / 10
	if math.Abs(sl.DurationHours-wantDuration) > 0.11 {
		t.Errorf("duration %v does not match distance-derived %v", sl.DurationHours, wantDuration)
	}
}

func TestEstimateTrainNilEndpoints(t *testing.T) {
	costs := services.NewCostService()

	est := costs.EstimateTrain(nil, &response_models.GeoPoint{Lat: 1, Lng: 1})
	if est.Available {
		t.Error("missing endpoint should make train unavailable")
	}
}

func TestEstimateTrainIdempotent(t *testing.T) {
	costs := services.NewCostService()

	origin := &response_models.GeoPoint{Lat: 28.6139, Lng: 77.2090}
	destination := &response_models.GeoPoint{Lat: 26.9124, Lng: 75.7873}

	a := costs.EstimateTrain(origin, destination)
	b := costs.EstimateTrain(origin, destination)
	if a.Classes["3A"].FarePerPerson != b.Classes["3A"].FarePerPerson {
		t.Error("same inputs should give same fares")
	}
}
