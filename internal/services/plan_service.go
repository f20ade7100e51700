package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"tripweaver/internal/models/db_models"
	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/repositories"
	"tripweaver/pkg/utils"
)

// PlanServiceInterface runs the full trip pipeline: resolve geography, pick
// airports, gather places, estimate costs, generate the day-by-day plan, and
// persist the result.
type PlanServiceInterface interface {
	PlanTrip(ctx context.Context, req request_models.PlanTripRequest, ownerID *uuid.UUID) (*response_models.Itinerary, error)
	GetItinerary(ctx context.Context, id string) (*response_models.StoredItinerary, error)
	ListTrips(ctx context.Context, ownerID uuid.UUID, limit int) ([]response_models.StoredItinerary, error)
}

type planService struct {
	geo         GeoServiceInterface
	airports    AirportServiceInterface
	attractions AttractionServiceInterface
	hotels      HotelServiceInterface
	routes      RouteServiceInterface
	costs       CostServiceInterface
	generator   ItineraryServiceInterface
	matcher     HotelMatcherServiceInterface
	repo        repositories.ItineraryRepository
}

func NewPlanService(
	geo GeoServiceInterface,
	airports AirportServiceInterface,
	attractions AttractionServiceInterface,
	hotels HotelServiceInterface,
	routes RouteServiceInterface,
	costs CostServiceInterface,
	generator ItineraryServiceInterface,
	matcher HotelMatcherServiceInterface,
	repo repositories.ItineraryRepository,
) PlanServiceInterface {
	return &planService{
		geo:         geo,
		airports:    airports,
		attractions: attractions,
		hotels:      hotels,
		routes:      routes,
		costs:       costs,
		generator:   generator,
		matcher:     matcher,
		repo:        repo,
	}
}

func (s *planService) PlanTrip(ctx context.Context, req request_models.PlanTripRequest, ownerID *uuid.UUID) (*response_models.Itinerary, error) {
	originGeo, err := s.geo.ResolveCity(ctx, req.OriginCity)
	if err != nil {
		return nil, err
	}
	destGeo, err := s.geo.ResolveCity(ctx, req.DestinationCity)
	if err != nil {
		return nil, err
	}

	originAirport, err := s.airports.FindNearestAirport(ctx, originGeo.Lat, originGeo.Lng)
	if err != nil {
		log.Printf("origin airport lookup failed: %v", err)
	}
	destAirport, err := s.airports.FindNearestAirport(ctx, destGeo.Lat, destGeo.Lng)
	if err != nil {
		log.Printf("destination airport lookup failed: %v", err)
	}

	// When the destination sits well away from its airport, the traveler
	// needs a ground leg; surface the options to the generator.
	var groundTransport *response_models.GroundTransport
	if destAirport != nil {
		if utils.HaversineKm(destAirport.Lat, destAirport.Lng, destGeo.Lat, destGeo.Lng) > 10 {
			gt := s.routes.GroundTransportOptions(ctx, destAirport.Lat, destAirport.Lng, destGeo.Lat, destGeo.Lng)
			groundTransport = &gt
		}
	}

	attractions, err := s.attractions.FindAttractions(ctx, destGeo.Lat, destGeo.Lng, 15)
	if err != nil {
		log.Printf("attraction lookup failed: %v", err)
		attractions = nil
	}

	destCityLabel := destinationCityLabel(req.DestinationCity)
	destCityName := cleanCityName(destCityLabel)

	hotelsResult, err := s.hotels.FindHotels(ctx, destGeo.Lat, destGeo.Lng, destCityLabel, 30, destGeo.CountryCode)
	if err != nil {
		log.Printf("hotel lookup failed: %v", err)
		hotelsResult = &HotelSearchResult{}
	}
	topHotels := hotelsResult.Hotels
	if len(topHotels) > 3 {
		topHotels = topHotels[:3]
	}

	flightEstimate := s.costs.EstimateFlights(originAirport, destAirport, req.OriginCity, req.DestinationCity)
	hotelEstimate := s.costs.EstimateHotels(topHotels, req.NumPeople)
	otherCosts := s.costs.EstimateOtherCosts(s.costs.DeriveCityPriceLevel(topHotels))

	// Rail only makes sense for short domestic hops.
	var trainEstimate *response_models.TrainEstimate
	if originGeo.CountryCode == "in" && destGeo.CountryCode == "in" {
		if utils.HaversineKm(originGeo.Lat, originGeo.Lng, destGeo.Lat, destGeo.Lng) <= 1200 {
			te := s.costs.EstimateTrain(originGeo, destGeo)
			trainEstimate = &te
		}
	}

	itinerary, err := s.generator.GenerateItinerary(ctx, GenerationInput{
		Request:            req,
		OriginGeo:          originGeo,
		DestinationGeo:     destGeo,
		Attractions:        attractions,
		Hotels:             topHotels,
		FlightEstimate:     flightEstimate,
		HotelEstimate:      hotelEstimate,
		OtherCosts:         otherCosts,
		TrainEstimate:      trainEstimate,
		GroundTransport:    groundTransport,
		DestinationAirport: destAirport,
	})
	if err != nil {
		return nil, utils.ErrGenerationFailed
	}

	citiesToFetch := s.validatedCities(ctx, itinerary.DailyPlan, destCityLabel, destCityName)
	hotelsByCity := s.fetchHotelsByCity(ctx, citiesToFetch, destGeo, destCityName)

	itinerary.Hotels = composeHotelsSection(itinerary.Hotels.Hotels, hotelsByCity, citiesToFetch, hotelsResult)
	itinerary.Hotels.HotelsByDay = s.matcher.MatchHotelsToDays(itinerary.DailyPlan, citiesToFetch, hotelsByCity, destCityLabel)

	if err := s.persist(ctx, req, itinerary, ownerID); err != nil {
		log.Printf("itinerary persist failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return itinerary, nil
}

// validatedCities keeps the destination first and appends plan-mentioned
// cities that geocode within roughly 300km of it.
func (s *planService) validatedCities(ctx context.Context, plan []response_models.DayPlan, destCityLabel, destCityName string) []string {
	cities := []string{destCityName}

	for _, city := range s.matcher.ExtractMentionedCities(plan, destCityLabel) {
		cityGeo, err := s.geo.ResolveCity(ctx, city+", IN")
		if err != nil {
			continue
		}
		destGeo, err := s.geo.ResolveCity(ctx, destCityLabel)
		if err != nil {
			continue
		}
		// 2.7 degrees is about 300km at Indian latitudes.
		if math.Abs(cityGeo.Lat-destGeo.Lat) < 2.7 && math.Abs(cityGeo.Lng-destGeo.Lng) < 2.7 {
			cities = append(cities, city)
		}
	}

	return cities
}

func (s *planService) fetchHotelsByCity(ctx context.Context, cities []string, destGeo *response_models.GeoPoint, destCityName string) map[string][]response_models.Hotel {
	hotelsByCity := make(map[string][]response_models.Hotel)

	destResult, err := s.hotels.FindHotels(ctx, destGeo.Lat, destGeo.Lng, destCityName, 15, "")
	if err == nil {
		kept := keepNearby(destResult.Hotels, destGeo.Lat, destGeo.Lng, 0.31, destCityName)
		if len(kept) > 0 {
			hotelsByCity[destCityName] = kept
		}
	} else {
		log.Printf("destination hotel fetch failed for %s: %v", destCityName, err)
	}

	for _, city := range cities {
		if city == destCityName {
			continue
		}
		cityGeo, err := s.geo.ResolveCity(ctx, city+", IN")
		if err != nil {
			continue
		}
		cityResult, err := s.hotels.FindHotels(ctx, cityGeo.Lat, cityGeo.Lng, city, 4, "")
		if err != nil {
			log.Printf("hotel fetch failed for %s: %v", city, err)
			continue
		}
		kept := keepNearby(cityResult.Hotels, cityGeo.Lat, cityGeo.Lng, 0.25, city)
		if len(kept) > 0 {
			hotelsByCity[city] = kept
		}
	}

	return hotelsByCity
}

// keepNearby drops hotels outside a degree box around the city center and
// tags the survivors with the city name.
func keepNearby(hotels []response_models.Hotel, lat, lng, maxDeg float64, city string) []response_models.Hotel {
	kept := make([]response_models.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if math.Abs(h.Lat-lat) < maxDeg && math.Abs(h.Lng-lng) < maxDeg {
			h.City = city
			kept = append(kept, h)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		ri, rj := ratingOrZero(kept[i].Rating), ratingOrZero(kept[j].Rating)
		if ri != rj {
			return ri > rj
		}
		return kept[i].RatingCount > kept[j].RatingCount
	})
	return kept
}

func composeHotelsSection(suggested []response_models.Hotel, hotelsByCity map[string][]response_models.Hotel, cities []string, searchResult *HotelSearchResult) response_models.HotelsSection {
	final := make([]response_models.Hotel, 0, len(suggested))

	for _, ai := range suggested {
		matched := false
		for city, cityHotels := range hotelsByCity {
			for _, ch := range cityHotels {
				if strings.EqualFold(ch.Name, ai.Name) {
					ch.City = city
					if ai.Rating != nil {
						ch.Rating = ai.Rating
					}
					final = append(final, ch)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched && ai.Lat != 0 && ai.Lng != 0 {
			final = append(final, ai)
		}
	}

	// Top up with per-city picks the model did not mention.
	for _, cityHotels := range hotelsByCity {
		for i, ch := range cityHotels {
			if i >= 2 {
				break
			}
			if !containsHotel(final, ch.Name) {
				final = append(final, ch)
			}
		}
	}

	sort.SliceStable(final, func(i, j int) bool {
		ri, rj := ratingOrZero(final[i].Rating), ratingOrZero(final[j].Rating)
		if ri != rj {
			return ri > rj
		}
		return final[i].RatingCount > final[j].RatingCount
	})
	if len(final) > 3 {
		final = final[:3]
	}

	note := searchResult.Note
	if len(cities) > 0 {
		listed := append([]string(nil), cities...)
		sort.Strings(listed)
		if len(listed) > 5 {
			listed = listed[:5]
		}
		note = "Hotels for: " + strings.Join(listed, ", ")
	}

	return response_models.HotelsSection{
		Hotels:          final,
		HotelsByCity:    hotelsByCity,
		Count:           len(final),
		CitiesMentioned: cities,
		CityLinks:       searchResult.CityLinks,
		Note:            note,
	}
}

func (s *planService) persist(ctx context.Context, req request_models.PlanTripRequest, itinerary *response_models.Itinerary, ownerID *uuid.UUID) error {
	document, err := json.Marshal(itinerary)
	if err != nil {
		return fmt.Errorf("marshal itinerary: %w", err)
	}

	row := &db_models.Itinerary{
		OwnerID:         ownerID,
		OriginCity:      req.OriginCity,
		DestinationCity: req.DestinationCity,
		NumDays:         req.NumDays,
		NumPeople:       req.NumPeople,
		Document:        string(document),
	}
	if err := s.repo.Insert(ctx, row); err != nil {
		return err
	}

	itinerary.ItineraryID = row.ID.String()
	return nil
}

func (s *planService) GetItinerary(ctx context.Context, id string) (*response_models.StoredItinerary, error) {
	row, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if row == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return storedFromRow(row)
}

func (s *planService) ListTrips(ctx context.Context, ownerID uuid.UUID, limit int) ([]response_models.StoredItinerary, error) {
	rows, err := s.repo.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	trips := make([]response_models.StoredItinerary, 0, len(rows))
	for i := range rows {
		stored, err := storedFromRow(&rows[i])
		if err != nil {
			log.Printf("skipping malformed itinerary %s: %v", rows[i].ID, err)
			continue
		}
		trips = append(trips, *stored)
	}
	return trips, nil
}

func storedFromRow(row *db_models.Itinerary) (*response_models.StoredItinerary, error) {
	var doc response_models.Itinerary
	if err := json.Unmarshal([]byte(row.Document), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal itinerary document: %w", err)
	}
	doc.ItineraryID = row.ID.String()

	stored := &response_models.StoredItinerary{
		ID:        row.ID.String(),
		CreatedAt: row.CreatedAt,
		Document:  doc,
	}
	if row.OwnerID != nil {
		stored.OwnerID = row.OwnerID.String()
	}
	return stored, nil
}

// destinationCityLabel keeps a state qualifier but strips a trailing country,
// so "Gangtok, Sikkim, IN" becomes "Gangtok, Sikkim".
func destinationCityLabel(destinationCity string) string {
	parts := strings.Split(destinationCity, ",")
	label := strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		second := strings.TrimSpace(parts[1])
		switch strings.ToLower(second) {
		case "in", "india", "us", "usa", "uk", "gb":
		default:
			if second != "" {
				label = label + ", " + second
			}
		}
	}
	return label
}
