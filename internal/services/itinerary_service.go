package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

// GenerationInput bundles everything the language model needs to draft a trip:
// the request, resolved geography, candidate places, and pre-computed cost
// estimates. The generator never calls external data services itself.
type GenerationInput struct {
	Request            request_models.PlanTripRequest
	OriginGeo          *response_models.GeoPoint
	DestinationGeo     *response_models.GeoPoint
	Attractions        []response_models.Attraction
	Hotels             []response_models.Hotel
	FlightEstimate     response_models.FlightEstimate
	HotelEstimate      response_models.HotelEstimate
	OtherCosts         response_models.OtherCostsEstimate
	TrainEstimate      *response_models.TrainEstimate
	GroundTransport    *response_models.GroundTransport
	DestinationAirport *response_models.Airport
}

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, input GenerationInput) (*response_models.Itinerary, error)
}

type itineraryService struct {
	llm        utils.GenerativeClientInterface
	maxRetries int
	retryDelay time.Duration
}

func NewItineraryService(llm utils.GenerativeClientInterface) ItineraryServiceInterface {
	return &itineraryService{
		llm:        llm,
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
	}
}

// generationState tracks a draft through validation and repair. A draft is
// retried while the model keeps returning unusable plans, and repaired with
// placeholder days once retries run out.
type generationState int

const (
	stateRequested generationState = iota
	stateValidating
	stateRetrying
	stateRepairing
	stateAccepted
)

const placeholderDayItem = "Day %d: Itinerary generation encountered an issue. Please try regenerating your trip plan."

// rawItinerary is the shape we accept from the model. Fields the model gets
// wrong or omits are replaced from our own estimates afterwards.
type rawItinerary struct {
	Summary   string                      `json:"summary"`
	Flights   *response_models.FlightEstimate `json:"flights"`
	Hotels    []response_models.Hotel    `json:"hotels"`
	DailyPlan []response_models.DayPlan  `json:"dailyPlan"`
}

func (s *itineraryService) GenerateItinerary(ctx context.Context, input GenerationInput) (*response_models.Itinerary, error) {
	prompt := buildItineraryPrompt(input)
	numDays := input.Request.NumDays

	var draft rawItinerary
	state := stateRequested

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		text, err := s.llm.GenerateItineraryJSON(ctx, prompt)
		if err != nil {
			log.Printf("itinerary generation attempt %d/%d failed: %v", attempt, s.maxRetries, err)
			state = stateRetrying
		} else {
			state = stateValidating
			cleaned := utils.CleanJSONResponse(text)

			var parsed rawItinerary
			if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
				log.Printf("itinerary JSON parse failed on attempt %d/%d: %v", attempt, s.maxRetries, err)
				state = stateRetrying
			} else if hasValidDailyPlan(parsed.DailyPlan, numDays) {
				draft = parsed
				state = stateAccepted
				break
			} else {
				// Keep the best draft we have; a partial plan still beats
				// placeholders for every day.
				if len(parsed.DailyPlan) > len(draft.DailyPlan) || draft.Summary == "" {
					draft = parsed
				}
				state = stateRetrying
			}
		}

		if attempt < s.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}
	}

	if state != stateAccepted {
		state = stateRepairing
		if draft.Summary == "" {
			draft.Summary = "Unable to generate itinerary; please try again."
		}
	}

	result := &response_models.Itinerary{
		Summary:   draft.Summary,
		DailyPlan: normalizeDailyPlan(draft.DailyPlan, numDays),
		Train:     input.TrainEstimate,
	}

	// The model tends to echo the flight estimate imperfectly; trust our own.
	result.Flights = input.FlightEstimate
	if result.Flights.Currency == "" {
		result.Flights.Currency = "INR"
	}

	result.Hotels.Hotels = mergeSuggestedHotels(draft.Hotels, input.Hotels)
	result.Hotels.Count = len(result.Hotels.Hotels)

	result.EstimatedTotals = computeTotals(input)

	return result, nil
}

func hasValidDailyPlan(plan []response_models.DayPlan, numDays int) bool {
	if len(plan) < numDays {
		return false
	}
	for _, day := range plan[:numDays] {
		if len(day.Items) == 0 {
			return false
		}
	}
	return true
}

// normalizeDailyPlan guarantees exactly numDays entries ordered day 1..N, with
// a placeholder item on any day the model left empty or missing.
func normalizeDailyPlan(plan []response_models.DayPlan, numDays int) []response_models.DayPlan {
	byDay := make(map[int]response_models.DayPlan, len(plan))
	for _, day := range plan {
		if day.Day < 1 {
			continue
		}
		existing, ok := byDay[day.Day]
		if !ok || len(day.Items) > len(existing.Items) {
			byDay[day.Day] = day
		}
	}

	out := make([]response_models.DayPlan, 0, numDays)
	for n := 1; n <= numDays; n++ {
		day, ok := byDay[n]
		if !ok || len(day.Items) == 0 {
			day = response_models.DayPlan{
				Day:   n,
				Items: []string{fmt.Sprintf(placeholderDayItem, n)},
			}
		}
		day.Day = n
		out = append(out, day)
	}
	return out
}

// mergeSuggestedHotels keeps the model's hotel picks but restores the fields
// it cannot know, matching against the searched hotels by name.
func mergeSuggestedHotels(suggested, searched []response_models.Hotel) []response_models.Hotel {
	const maxHotels = 6

	if len(suggested) == 0 {
		if len(searched) > maxHotels {
			return searched[:maxHotels]
		}
		return searched
	}

	byName := make(map[string]response_models.Hotel, len(searched))
	for _, h := range searched {
		byName[strings.ToLower(h.Name)] = h
	}

	merged := make([]response_models.Hotel, 0, len(suggested))
	for _, ai := range suggested {
		if original, ok := byName[strings.ToLower(ai.Name)]; ok {
			if original.BookingLinks != nil {
				ai.BookingLinks = original.BookingLinks
			}
			if original.Phone != "" {
				ai.Phone = original.Phone
			}
			if original.Stars != nil {
				ai.Stars = original.Stars
			}
			if original.Rating != nil {
				ai.Rating = original.Rating
			}
			if original.RatingCount > 0 {
				ai.RatingCount = original.RatingCount
			}
			if original.PriceLevel != nil {
				ai.PriceLevel = original.PriceLevel
			}
		}
		merged = append(merged, ai)
		if len(merged) >= maxHotels {
			break
		}
	}
	return merged
}

// computeTotals derives trip totals from our own estimates. When a train
// estimate exists its 3A fare replaces flights as the main transport cost.
func computeTotals(input GenerationInput) response_models.EstimatedTotals {
	req := input.Request
	people := float64(req.NumPeople)
	days := float64(req.NumDays)

	flightsTotal := 0.0
	if input.FlightEstimate.RoundTripPerPerson != nil {
		flightsTotal = *input.FlightEstimate.RoundTripPerPerson * people
	}

	hotelsTotal := input.HotelEstimate.PerNight * days
	activitiesTotal := input.OtherCosts.ActivitiesPerDayPerPerson * people * days
	foodMiscTotal := input.OtherCosts.FoodTransportMiscPerDayPerPerson * people * days

	trainTotal := 0.0
	if input.TrainEstimate != nil && input.TrainEstimate.Available {
		if chosen, ok := pickTrainClass(input.TrainEstimate.Classes); ok {
			trainTotal = chosen.FarePerPerson * people
			flightsTotal = 0.0
		}
	}

	currency := input.FlightEstimate.Currency
	if currency == "" {
		currency = input.HotelEstimate.Currency
	}
	if currency == "" {
		currency = "INR"
	}

	return response_models.EstimatedTotals{
		Flights:           utils.Round2(flightsTotal),
		Train:             utils.Round2(trainTotal),
		Hotels:            utils.Round2(hotelsTotal),
		Activities:        utils.Round2(activitiesTotal),
		FoodTransportMisc: utils.Round2(foodMiscTotal),
		GrandTotal:        utils.Round2(flightsTotal + trainTotal + hotelsTotal + activitiesTotal + foodMiscTotal),
		Currency:          currency,
	}
}

// pickTrainClass prefers 3A as the value-for-money default, falling back to
// whichever class sorts first.
func pickTrainClass(classes map[string]response_models.TrainClass) (response_models.TrainClass, bool) {
	if len(classes) == 0 {
		return response_models.TrainClass{}, false
	}
	if chosen, ok := classes["3A"]; ok {
		return chosen, true
	}

	keys := make([]string, 0, len(classes))
	for k := range classes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return classes[keys[0]], true
}
