package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"tripweaver/internal/models/db_models"
	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

// ---- fakes ----

type fakeGeo struct {
	points map[string]response_models.GeoPoint
}

func (f *fakeGeo) ResolveCity(ctx context.Context, name string) (*response_models.GeoPoint, error) {
	if p, ok := f.points[name]; ok {
		return &p, nil
	}
	return nil, utils.ErrCityNotFound
}

func (f *fakeGeo) SearchCities(ctx context.Context, query string, limit int) ([]response_models.CityCandidate, error) {
	return nil, nil
}

func (f *fakeGeo) ReverseCountry(ctx context.Context, lat, lng float64) (string, error) {
	return "in", nil
}

type fakeAirports struct {
	byLat map[float64]*response_models.Airport
}

func (f *fakeAirports) FindNearestAirport(ctx context.Context, lat, lng float64) (*response_models.Airport, error) {
	return f.byLat[lat], nil
}

type fakeAttractions struct{}

func (f *fakeAttractions) FindAttractions(ctx context.Context, lat, lng float64, limit int) ([]response_models.Attraction, error) {
	return []response_models.Attraction{{Name: "MG Marg", Lat: lat, Lng: lng}}, nil
}

type fakeHotels struct {
	result services.HotelSearchResult
}

func (f *fakeHotels) FindHotels(ctx context.Context, lat, lng float64, city string, limit int, countryCode string) (*services.HotelSearchResult, error) {
	r := f.result
	return &r, nil
}

type fakeRoutes struct {
	groundCalls int
}

func (f *fakeRoutes) GetRoute(ctx context.Context, originLat, originLng, destLat, destLng float64, profile string) response_models.RouteEstimate {
	return response_models.RouteEstimate{DistanceKm: 72.0, DurationMinutes: 150, Available: true}
}

func (f *fakeRoutes) GroundTransportOptions(ctx context.Context, originLat, originLng, destLat, destLng float64) response_models.GroundTransport {
	f.groundCalls++
	return response_models.GroundTransport{
		Taxi: response_models.TransportOption{Mode: "taxi", DistanceKm: 72.0, DurationMinutes: 150, Available: true},
	}
}

type fakeItineraryRepo struct {
	inserted  []*db_models.Itinerary
	insertErr error
}

func (f *fakeItineraryRepo) Insert(ctx context.Context, itinerary *db_models.Itinerary) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	itinerary.ID = uuid.New()
	f.inserted = append(f.inserted, itinerary)
	return nil
}

func (f *fakeItineraryRepo) FindById(ctx context.Context, id string) (*db_models.Itinerary, error) {
	for _, row := range f.inserted {
		if row.ID.String() == id {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeItineraryRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]db_models.Itinerary, error) {
	var rows []db_models.Itinerary
	for _, row := range f.inserted {
		if row.OwnerID != nil && *row.OwnerID == ownerID {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

// ---- setup ----

func newTestPlanService(repo *fakeItineraryRepo, routes *fakeRoutes) services.PlanServiceInterface {
	geo := &fakeGeo{points: map[string]response_models.GeoPoint{
		"New Delhi, IN": {Lat: 28.6139, Lng: 77.2090, CountryCode: "in", Formatted: "New Delhi, India"},
		"Gangtok, IN":   {Lat: 27.3389, Lng: 88.6065, CountryCode: "in", Formatted: "Gangtok, Sikkim, India"},
		"Gangtok":       {Lat: 27.3389, Lng: 88.6065, CountryCode: "in", Formatted: "Gangtok, Sikkim, India"},
	}}

	airports := &fakeAirports{byLat: map[float64]*response_models.Airport{
		28.6139: {Name: "Indira Gandhi International Airport", IATA: "DEL", Lat: 28.5562, Lng: 77.1000},
		// Bagdogra is the serving airport but sits ~68km from Gangtok.
		27.3389: {Name: "Bagdogra Airport", IATA: "IXB", Lat: 26.6812, Lng: 88.3286},
	}}

	hotels := &fakeHotels{result: services.HotelSearchResult{
		Hotels: []response_models.Hotel{
			{Name: "Summit Residency", Lat: 27.34, Lng: 88.61, BookingLinks: &response_models.BookingLinks{City: "https://www.booking.com/search.html?ss=Gangtok"}},
		},
		Count:     1,
		CityLinks: map[string]string{"booking_city": "https://www.booking.com/search.html?ss=Gangtok"},
	}}

	llm := &fakeLLM{responses: []string{`{
  "summary": "Three days in the Himalayan foothills.",
  "flights": {"currency": "INR"},
  "hotels": [],
  "dailyPlan": [
    {"day": 1, "items": ["Fly to Bagdogra Airport, then take taxi to Gangtok. Hotel check-in on arrival."]},
    {"day": 2, "items": ["Explore MG Marg and the monasteries above town."]},
    {"day": 3, "items": ["Morning cable car ride, then depart for the airport."]}
  ],
  "estimatedTotals": {}
}`}}

	return services.NewPlanService(
		geo,
		airports,
		&fakeAttractions{},
		hotels,
		routes,
		services.NewCostService(),
		services.NewItineraryService(llm),
		services.NewHotelMatcherService(),
		repo,
	)
}

func planRequest() request_models.PlanTripRequest {
	return request_models.PlanTripRequest{
		OriginCity:      "New Delhi, IN",
		DestinationCity: "Gangtok, IN",
		NumDays:         3,
		NumPeople:       2,
	}
}

// ---- tests ----

func TestPlanTripEndToEnd(t *testing.T) {
	repo := &fakeItineraryRepo{}
	routes := &fakeRoutes{}
	svc := newTestPlanService(repo, routes)

	it, err := svc.PlanTrip(context.Background(), planRequest(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if it.ItineraryID == "" {
		t.Error("itinerary id should be set after persistence")
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 persisted itinerary, got %d", len(repo.inserted))
	}
	if repo.inserted[0].OwnerID != nil {
		t.Error("anonymous plans must not carry an owner")
	}

	if len(it.DailyPlan) != 3 {
		t.Errorf("expected 3 days, got %d", len(it.DailyPlan))
	}

	// Delhi to Gangtok is well under 1200km and domestic, so the train
	// option must be offered.
	if it.Train == nil || !it.Train.Available {
		t.Error("domestic short trip should include a train estimate")
	}

	if routes.groundCalls != 1 {
		t.Errorf("Gangtok sits far from Bagdogra; ground transport should be fetched once, got %d", routes.groundCalls)
	}

	if it.EstimatedTotals.GrandTotal <= 0 {
		t.Error("totals should be computed")
	}
	if it.EstimatedTotals.Flights != 0 {
		t.Error("with a train available flights should drop out of the totals")
	}
}

func TestPlanTripUnknownCity(t *testing.T) {
	repo := &fakeItineraryRepo{}
	svc := newTestPlanService(repo, &fakeRoutes{})

	req := planRequest()
	req.OriginCity = "Atlantis"

	_, err := svc.PlanTrip(context.Background(), req, nil)
	if !errors.Is(err, utils.ErrCityNotFound) {
		t.Errorf("expected ErrCityNotFound, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Error("nothing should be persisted when resolution fails")
	}
}

func TestPlanTripOwnerAttached(t *testing.T) {
	repo := &fakeItineraryRepo{}
	svc := newTestPlanService(repo, &fakeRoutes{})

	owner := uuid.New()
	it, err := svc.PlanTrip(context.Background(), planRequest(), &owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.inserted[0].OwnerID == nil || *repo.inserted[0].OwnerID != owner {
		t.Error("owner id should be stored with the itinerary")
	}

	trips, err := svc.ListTrips(context.Background(), owner, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("expected 1 trip for owner, got %d", len(trips))
	}
	if trips[0].ID != it.ItineraryID {
		t.Errorf("listed trip id %q does not match planned %q", trips[0].ID, it.ItineraryID)
	}
	if trips[0].Document.Summary == "" {
		t.Error("stored document should round-trip through persistence")
	}
}

func TestPlanTripPersistenceFailureAborts(t *testing.T) {
	repo := &fakeItineraryRepo{insertErr: errors.New("db down")}
	svc := newTestPlanService(repo, &fakeRoutes{})

	_, err := svc.PlanTrip(context.Background(), planRequest(), nil)
	if !errors.Is(err, utils.ErrDatabaseError) {
		t.Errorf("expected ErrDatabaseError, got %v", err)
	}
}

func TestGetItineraryNotFound(t *testing.T) {
	repo := &fakeItineraryRepo{}
	svc := newTestPlanService(repo, &fakeRoutes{})

	_, err := svc.GetItinerary(context.Background(), uuid.New().String())
	if !errors.Is(err, utils.ErrItineraryNotFound) {
		t.Errorf("expected ErrItineraryNotFound, got %v", err)
	}
}
