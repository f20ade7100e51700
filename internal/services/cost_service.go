package services

import (
	"net/url"
	"os"
	"sort"

	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

// CostServiceInterface holds the heuristic money math: flights from
// great-circle distance, hotels from price-level bands, daily spending from a
// city price signal, and rail fares per class. All of it is deterministic and
// needs no network access.
type CostServiceInterface interface {
	EstimateFlights(originAirport, destinationAirport *response_models.Airport, originCity, destinationCity string) response_models.FlightEstimate
	EstimateHotels(hotels []response_models.Hotel, numPeople int) response_models.HotelEstimate
	DeriveCityPriceLevel(hotels []response_models.Hotel) int
	EstimateOtherCosts(cityPriceLevel int) response_models.OtherCostsEstimate
	EstimateTrain(origin, destination *response_models.GeoPoint) response_models.TrainEstimate
	Currency() string
}

type costService struct {
	currency string
}

func NewCostService() CostServiceInterface {
	currency := os.Getenv("DEFAULT_CURRENCY")
	if currency == "" {
		currency = "INR"
	}
	return &costService{currency: currency}
}

func (c *costService) Currency() string {
	return c.currency
}

func (c *costService) EstimateFlights(originAirport, destinationAirport *response_models.Airport, originCity, destinationCity string) response_models.FlightEstimate {
	if originAirport == nil || destinationAirport == nil {
		return response_models.FlightEstimate{Currency: c.currency}
	}

	distanceKm := utils.HaversineKm(originAirport.Lat, originAirport.Lng, destinationAirport.Lat, destinationAirport.Lng)

	// Very rough fare model: base fee plus per-km, with a floor.
	perPerson := 3000.0 + 6.5*distanceKm
	if perPerson < 9000.0 {
		perPerson = 9000.0
	}
	rounded := utils.Round2(perPerson)

	var link string
	switch {
	case originAirport.IATA != "" && destinationAirport.IATA != "":
		link = "https://www.skyscanner.co.in/transport/flights/" + url.QueryEscape(originAirport.IATA) + "/" + url.QueryEscape(destinationAirport.IATA) + "/"
	default:
		originName := cleanCityName(originCity)
		destName := cleanCityName(destinationCity)
		if originName == "" {
			originName = originAirport.Name
		}
		if destName == "" {
			destName = destinationAirport.Name
		}
		if originName != "" && destName != "" {
			link = "https://www.skyscanner.co.in/transport/flights/" + url.QueryEscape(originName) + "/" + url.QueryEscape(destName) + "/"
		}
	}

	return response_models.FlightEstimate{
		OriginAirport:      originAirport.Name,
		DestinationAirport: destinationAirport.Name,
		RoundTripPerPerson: &rounded,
		Currency:           c.currency,
		BookingLink:        link,
	}
}

// priceLevelToNightly maps a places price level (0-4) to an indicative nightly
// rate for two people.
var priceLevelToNightly = map[int]float64{
	0: 2500.0,
	1: 4000.0,
	2: 7000.0,
	3: 11000.0,
	4: 16000.0,
}

const fallbackNightly = 7000.0

func (c *costService) EstimateHotels(hotels []response_models.Hotel, numPeople int) response_models.HotelEstimate {
	levels := collectPriceLevels(hotels)

	perNight := fallbackNightly
	if len(levels) > 0 {
		sort.Ints(levels)
		if v, ok := priceLevelToNightly[levels[len(levels)/2]]; ok {
			perNight = v
		}
	}

	scale := float64(numPeople) / 2.0
	if scale < 1.0 {
		scale = 1.0
	}

	return response_models.HotelEstimate{
		PerNight: utils.Round2(perNight * scale),
		Currency: c.currency,
	}
}

func (c *costService) DeriveCityPriceLevel(hotels []response_models.Hotel) int {
	levels := collectPriceLevels(hotels)
	if len(levels) == 0 {
		return 2
	}

	sum := 0
	for _, l := range levels {
		sum += l
	}
	avg := float64(sum) / float64(len(levels))

	switch {
	case avg >= 3.2:
		return 4
	case avg >= 2.5:
		return 3
	case avg >= 1.5:
		return 2
	case avg >= 0.8:
		return 1
	default:
		return 0
	}
}

var spendingBands = map[int][2]float64{
	0: {400.0, 600.0},
	1: {700.0, 900.0},
	2: {1200.0, 1500.0},
	3: {1800.0, 2200.0},
	4: {2600.0, 3200.0},
}

func (c *costService) EstimateOtherCosts(cityPriceLevel int) response_models.OtherCostsEstimate {
	band, ok := spendingBands[cityPriceLevel]
	if !ok {
		band = spendingBands[2]
	}

	return response_models.OtherCostsEstimate{
		ActivitiesPerDayPerPerson:        band[0],
		FoodTransportMiscPerDayPerPerson: band[1],
		Currency:                         c.currency,
	}
}

func (c *costService) EstimateTrain(origin, destination *response_models.GeoPoint) response_models.TrainEstimate {
	if origin == nil || destination == nil {
		return response_models.TrainEstimate{Available: false, Classes: map[string]response_models.TrainClass{}}
	}

	distanceKm := utils.HaversineKm(origin.Lat, origin.Lng, destination.Lat, destination.Lng)

	// Long-distance trains in India average around 55 km/h; the half hour
	// covers intermediate stops.
	durationH := distanceKm/55.0 + 0.5
	if durationH < 1.0 {
		durationH = 1.0
	}
	durationH = utils.Round1(durationH)

	class := func(minFare, perKm float64, description string) response_models.TrainClass {
		fare := perKm * distanceKm
		if fare < minFare {
			fare = minFare
		}
		return response_models.TrainClass{
			FarePerPerson: utils.Round2(fare),
			DurationHours: durationH,
			Currency:      c.currency,
			Description:   description,
		}
	}

	return response_models.TrainEstimate{
		Available:  true,
		DistanceKm: utils.Round1(distanceKm),
		Classes: map[string]response_models.TrainClass{
			"SL": class(200.0, 0.6, "Sleeper Class"),
			"3A": class(600.0, 1.6, "3-tier AC"),
			"2A": class(900.0, 2.4, "2-tier AC"),
			"1A": class(1500.0, 4.0, "First AC"),
		},
		Note: "Estimates only. Actual fares and duration may vary. Book via IRCTC (irctc.co.in) or authorized agents.",
	}
}

func collectPriceLevels(hotels []response_models.Hotel) []int {
	var levels []int
	for _, h := range hotels {
		if h.PriceLevel != nil {
			levels = append(levels, *h.PriceLevel)
		}
	}
	return levels
}
