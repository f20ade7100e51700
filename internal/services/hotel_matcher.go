package services

import (
	"regexp"
	"sort"
	"strings"

	"tripweaver/internal/models/response_models"
)

// HotelMatcherServiceInterface reads the generated daily plan and figures out
// which cities it actually visits and which hotels belong on which day. The
// day mapping is advisory, a heuristic over free text, and callers treat it
// as a hint rather than a booking.
type HotelMatcherServiceInterface interface {
	ExtractMentionedCities(plan []response_models.DayPlan, destinationCity string) []string
	MatchHotelsToDays(plan []response_models.DayPlan, cities []string, hotelsByCity map[string][]response_models.Hotel, destinationCity string) map[int][]response_models.Hotel
}

type hotelMatcherService struct{}

func NewHotelMatcherService() HotelMatcherServiceInterface {
	return &hotelMatcherService{}
}

var (
	explicitVisitRe = regexp.MustCompile(`\b(?i:visit|travel to|go to|head to|stay in|stay at|arrive in|arrive at|explore)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	cityLandmarkRe  = regexp.MustCompile(`\b([A-Z][a-z]+)\s+(?:City\s+)?(?:Fort|Palace|Lake|Temple|Market|Airport|Museum)\b`)

	hotelNameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i:check-?in)\s+(?:at|to)?\s*([A-Z][A-Za-z\s&\-]+?)(?:\s|$|,|\.|Hotel)`),
		regexp.MustCompile(`(?i:stay)\s+(?:at|in)?\s*([A-Z][A-Za-z\s&\-]+?)(?:\s|$|,|\.)`),
		regexp.MustCompile(`\bat\s+([A-Z][A-Za-z\s&\-]+?\s+Hotel)`),
		regexp.MustCompile(`(?i:hotel)\s+([A-Z][A-Za-z\s&\-]+?)(?:\s|$|,|\.)`),
	}

	hotelNameSuffixRe = regexp.MustCompile(`(?i)\s+(Hotel|Palace|Resort|Inn|Lodge)$`)
	multiSpaceRe      = regexp.MustCompile(`\s+`)
)

// notCityWords are capitalized words the visit patterns keep tripping over.
var notCityWords = map[string]bool{
	"Morning":   true,
	"Afternoon": true,
	"Evening":   true,
	"Hotel":     true,
	"Airport":   true,
	"Local":     true,
	"Nearby":    true,
	"The":       true,
	"New":       true,
	"Old":       true,
}

func (m *hotelMatcherService) ExtractMentionedCities(plan []response_models.DayPlan, destinationCity string) []string {
	destLower := strings.ToLower(cleanCityName(destinationCity))

	mentioned := make(map[string]bool)
	for _, day := range plan {
		for _, item := range day.Items {
			for _, match := range explicitVisitRe.FindAllStringSubmatch(item, -1) {
				city := strings.TrimSpace(match[1])
				if len(city) <= 2 || strings.ToLower(city) == destLower || notCityWords[city] {
					continue
				}
				mentioned[city] = true
			}
			for _, match := range cityLandmarkRe.FindAllStringSubmatch(item, -1) {
				city := match[1]
				if strings.ToLower(city) == destLower || notCityWords[city] {
					continue
				}
				mentioned[city] = true
			}
		}
	}

	cities := make([]string, 0, len(mentioned))
	for city := range mentioned {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

func (m *hotelMatcherService) MatchHotelsToDays(plan []response_models.DayPlan, cities []string, hotelsByCity map[string][]response_models.Hotel, destinationCity string) map[int][]response_models.Hotel {
	destCity := cleanCityName(destinationCity)
	hotelsByDay := make(map[int][]response_models.Hotel)

	for _, day := range plan {
		dayCities := citiesForDay(day.Items, cities)

		// A check-in or check-out day with no named city is almost always
		// spent in the main destination.
		if len(dayCities) == 0 {
			for _, item := range day.Items {
				lower := strings.ToLower(item)
				if strings.Contains(lower, "check-in") || strings.Contains(lower, "check-out") ||
					strings.Contains(lower, "check in") || strings.Contains(lower, "check out") {
					dayCities = append(dayCities, destCity)
					break
				}
			}
		}

		var dayHotels []response_models.Hotel
		for _, city := range dayCities {
			cityHotels := hotelsByCity[city]
			for i, hotel := range cityHotels {
				if i >= 2 {
					break
				}
				hotel.Day = day.Day
				hotel.City = city
				if !containsHotel(dayHotels, hotel.Name) {
					dayHotels = append(dayHotels, hotel)
				}
			}
		}

		for _, item := range day.Items {
			for _, re := range hotelNameRes {
				for _, match := range re.FindAllStringSubmatch(item, -1) {
					candidate := normalizeHotelName(match[1])
					if len(candidate) < 3 {
						continue
					}
					for _, city := range dayCities {
						if matched, ok := findHotelByWords(hotelsByCity[city], candidate); ok {
							matched.Day = day.Day
							matched.City = city
							if !containsHotel(dayHotels, matched.Name) {
								// A hotel named in the plan text outranks the
								// generic per-city picks.
								dayHotels = append([]response_models.Hotel{matched}, dayHotels...)
							}
						}
					}
				}
			}
		}

		if len(dayHotels) > 0 {
			hotelsByDay[day.Day] = dayHotels
		}
	}

	return hotelsByDay
}

// citiesForDay reports which known cities a day's items mention, skipping
// phrases like "Jaipur Airport" where the city name tags a facility rather
// than a stay.
func citiesForDay(items []string, cities []string) []string {
	found := make([]string, 0, 2)
	for _, city := range cities {
		cityLower := strings.ToLower(city)
		for _, item := range items {
			itemLower := strings.ToLower(item)
			if !strings.Contains(itemLower, cityLower) {
				continue
			}
			if strings.Contains(itemLower, cityLower+" airport") ||
				strings.Contains(itemLower, cityLower+" market") ||
				strings.Contains(itemLower, cityLower+" city") {
				continue
			}
			if !containsString(found, city) {
				found = append(found, city)
			}
			break
		}
	}
	return found
}

func normalizeHotelName(raw string) string {
	name := strings.TrimSpace(raw)
	name = hotelNameSuffixRe.ReplaceAllString(name, "")
	return multiSpaceRe.ReplaceAllString(strings.TrimSpace(name), " ")
}

// findHotelByWords matches a candidate name against known hotels by shared
// words longer than two characters.
func findHotelByWords(hotels []response_models.Hotel, candidate string) (response_models.Hotel, bool) {
	candidateWords := significantWords(candidate)
	if len(candidateWords) == 0 {
		return response_models.Hotel{}, false
	}

	for _, hotel := range hotels {
		hotelWords := significantWords(hotel.Name)
		for w := range candidateWords {
			if hotelWords[w] {
				return hotel, true
			}
		}
	}
	return response_models.Hotel{}, false
}

func significantWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if len(w) > 2 {
			words[w] = true
		}
	}
	return words
}

func containsHotel(hotels []response_models.Hotel, name string) bool {
	for _, h := range hotels {
		if h.Name == name {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
